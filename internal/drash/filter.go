package drash

import (
	"log/slog"
	"regexp"
	"slices"

	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/samber/lo"

	"github.com/babarot/drash/internal/config"
)

// filter drops the entries matching any of the exclusion rules. Patterns and
// globs are matched against the entry name; the size bounds are exclusive.
func filter(entries []Entry, exclude config.ExcludeConfig) []Entry {
	entries = rejectByNames(entries, exclude.Files)
	entries = rejectByPatterns(entries, exclude.Patterns)
	entries = rejectByGlobs(entries, exclude.Globs)
	entries = rejectBySize(entries, exclude.Size)
	return entries
}

func rejectByNames(entries []Entry, names []string) []Entry {
	if len(names) == 0 {
		return entries
	}
	return lo.Reject(entries, func(e Entry, _ int) bool {
		return slices.Contains(names, e.Name)
	})
}

func rejectByPatterns(entries []Entry, patterns []string) []Entry {
	if len(patterns) == 0 {
		return entries
	}
	var res []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			slog.Warn("ignoring invalid exclude pattern", "pattern", p, "error", err)
			continue
		}
		res = append(res, re)
	}
	return lo.Reject(entries, func(e Entry, _ int) bool {
		return lo.SomeBy(res, func(re *regexp.Regexp) bool {
			return re.MatchString(e.Name)
		})
	})
}

func rejectByGlobs(entries []Entry, globs []string) []Entry {
	if len(globs) == 0 {
		return entries
	}
	var gs []glob.Glob
	for _, g := range globs {
		compiled, err := glob.Compile(g)
		if err != nil {
			slog.Warn("ignoring invalid exclude glob", "glob", g, "error", err)
			continue
		}
		gs = append(gs, compiled)
	}
	return lo.Reject(entries, func(e Entry, _ int) bool {
		return lo.SomeBy(gs, func(g glob.Glob) bool {
			return g.Match(e.Name)
		})
	})
}

func rejectBySize(entries []Entry, size config.SizeConfig) []Entry {
	if size.Min == "" && size.Max == "" {
		return entries
	}
	return lo.Filter(entries, func(e Entry, _ int) bool {
		if e.Size < 0 {
			return true
		}
		if size.Min != "" {
			if min, err := units.FromHumanSize(size.Min); err == nil && e.Size <= min {
				return false
			}
		}
		if size.Max != "" {
			if max, err := units.FromHumanSize(size.Max); err == nil && max <= e.Size {
				return false
			}
		}
		return true
	})
}
