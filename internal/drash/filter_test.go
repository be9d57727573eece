package drash

import (
	"testing"

	"github.com/samber/lo"

	"github.com/babarot/drash/internal/config"
)

func createTestEntries() []Entry {
	return []Entry{
		{Name: "file1.txt", Path: "/home/u/file1.txt", Size: 100},
		{Name: "file2.log", Path: "/home/u/file2.log", Size: 1024},
		{Name: "important.txt", Path: "/home/u/important.txt", Size: 10240},
		{Name: "temp.tmp", Path: "/home/u/temp.tmp", Size: 102400},
		{Name: ".DS_Store", Path: "/home/u/.DS_Store", Size: -1},
	}
}

func names(entries []Entry) []string {
	return lo.Map(entries, func(e Entry, _ int) string { return e.Name })
}

func TestFilter(t *testing.T) {
	testCases := []struct {
		name          string
		exclude       config.ExcludeConfig
		expectedNames []string
	}{
		{
			name:          "No filter",
			exclude:       config.ExcludeConfig{},
			expectedNames: []string{"file1.txt", "file2.log", "important.txt", "temp.tmp", ".DS_Store"},
		},
		{
			name:          "Filter by names",
			exclude:       config.ExcludeConfig{Files: []string{".DS_Store", "temp.tmp"}},
			expectedNames: []string{"file1.txt", "file2.log", "important.txt"},
		},
		{
			name:          "Filter by patterns",
			exclude:       config.ExcludeConfig{Patterns: []string{`^file\d`, "("}},
			expectedNames: []string{"important.txt", "temp.tmp", ".DS_Store"},
		},
		{
			name:          "Filter by globs",
			exclude:       config.ExcludeConfig{Globs: []string{"*.txt", "[a"}},
			expectedNames: []string{"file2.log", "temp.tmp", ".DS_Store"},
		},
		{
			name:          "Filter by min size",
			exclude:       config.ExcludeConfig{Size: config.SizeConfig{Min: "1KB"}},
			expectedNames: []string{"file2.log", "important.txt", "temp.tmp", ".DS_Store"},
		},
		{
			name:          "Filter by max size",
			exclude:       config.ExcludeConfig{Size: config.SizeConfig{Max: "10KB"}},
			expectedNames: []string{"file1.txt", "file2.log", ".DS_Store"},
		},
		{
			name:          "Filter by both min and max size",
			exclude:       config.ExcludeConfig{Size: config.SizeConfig{Min: "1KB", Max: "20KB"}},
			expectedNames: []string{"file2.log", "important.txt", ".DS_Store"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(filter(createTestEntries(), tc.exclude))
			if len(got) != len(tc.expectedNames) {
				t.Fatalf("Expected %v, got %v", tc.expectedNames, got)
			}
			for i := range got {
				if got[i] != tc.expectedNames[i] {
					t.Errorf("Expected %v, got %v", tc.expectedNames, got)
					break
				}
			}
		})
	}
}
