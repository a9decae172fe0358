// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

// Package main is a command-line exerciser for the tab sorter.
//
// It reads one JSON command from stdin, in the same shape the browser
// companion accepts:
//
//	{"cmd": "sort", "order": "asc"}
//
// and applies it to a tab list file (one URL per line, tab IDs assigned
// by line number). The final tab order is printed to stdout followed by
// the JSON result:
//
//	cartolina-tabsort -tabs tabs.txt < command.json
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/mwielgat/cartolina/internal/logging"
	"github.com/mwielgat/cartolina/internal/tabsort"
)

// fileTabs adapts a flat URL list to the tabsort.TabMover interface.
// Moves reorder the in-memory list the way browser.tabs.move reorders
// a tab strip.
type fileTabs struct {
	tabs []tabsort.Tab
}

func loadTabs(path string) (*fileTabs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tabs []tabsort.Tab
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url == "" {
			continue
		}
		tabs = append(tabs, tabsort.Tab{ID: len(tabs) + 1, URL: url})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &fileTabs{tabs: tabs}, nil
}

func (f *fileTabs) Query(_ context.Context, urlPattern string) ([]tabsort.Tab, error) {
	// The only pattern the sorter uses selects postcard pages.
	matched := make([]tabsort.Tab, 0, len(f.tabs))
	for _, tab := range f.tabs {
		if strings.Contains(tab.URL, "/postcards/") {
			matched = append(matched, tab)
		}
	}
	return matched, nil
}

func (f *fileTabs) Move(_ context.Context, tabID, index int) error {
	from := -1
	for i, tab := range f.tabs {
		if tab.ID == tabID {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("no tab with id %d", tabID)
	}

	tab := f.tabs[from]
	f.tabs = append(f.tabs[:from], f.tabs[from+1:]...)
	if index > len(f.tabs) {
		index = len(f.tabs)
	}
	f.tabs = append(f.tabs[:index], append([]tabsort.Tab{tab}, f.tabs[index:]...)...)
	return nil
}

func main() {
	tabsPath := flag.String("tabs", "", "path to tab list file, one URL per line")
	flag.Parse()

	if *tabsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: cartolina-tabsort -tabs <file> < command.json")
		os.Exit(2)
	}

	tabs, err := loadTabs(*tabsPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", *tabsPath).Msg("Failed to load tab list")
	}

	var cmd tabsort.Command
	if err := json.NewDecoder(os.Stdin).Decode(&cmd); err != nil {
		logging.Fatal().Err(err).Msg("Failed to decode command from stdin")
	}

	result := tabsort.NewSorter(tabs).Handle(context.Background(), cmd)

	for _, tab := range tabs.tabs {
		fmt.Println(tab.URL)
	}

	out, err := json.Marshal(result)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(out))

	if !result.Success {
		os.Exit(1)
	}
}
