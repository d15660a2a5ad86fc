package main

import "testing"

func TestResolveChoice_KeysAndAliases(t *testing.T) {
	for _, opt := range menuOptions {
		key, ok := resolveChoice(opt.Key)
		if !ok || key != opt.Key {
			t.Fatalf("resolveChoice(%q) = %q, %v; want %q", opt.Key, key, ok, opt.Key)
		}
		for _, alias := range opt.Aliases {
			key, ok := resolveChoice(alias)
			if !ok || key != opt.Key {
				t.Fatalf("resolveChoice(%q) = %q, %v; want %q", alias, key, ok, opt.Key)
			}
		}
	}
}

func TestResolveChoice_Normalization(t *testing.T) {
	cases := map[string]string{
		"  SEARCH ": "1",
		"Q":         "0",
		"s":         "1",
		"1":         "1",
	}
	for input, want := range cases {
		key, ok := resolveChoice(input)
		if !ok || key != want {
			t.Fatalf("resolveChoice(%q) = %q, %v; want %q", input, key, ok, want)
		}
	}
}

func TestResolveChoice_NoMatch(t *testing.T) {
	for _, input := range []string{"", "   ", "unknown", "77"} {
		if _, ok := resolveChoice(input); ok {
			t.Fatalf("resolveChoice(%q) matched, want no match", input)
		}
	}
}

func TestScoreOption_Ordering(t *testing.T) {
	search, _ := optionByKey("1")

	exactKey := scoreOption("1", search)
	exactLabel := scoreOption("search", search)
	labelPrefix := scoreOption("sea", search)
	hintSub := scoreOption("recent posts", search)

	if !(exactKey > exactLabel && exactLabel > labelPrefix && labelPrefix > hintSub) {
		t.Fatalf("score ordering violated: key=%d label=%d prefix=%d hint=%d",
			exactKey, exactLabel, labelPrefix, hintSub)
	}
	if hintSub <= 0 {
		t.Fatalf("hint substring should still match, got %d", hintSub)
	}
}

func TestScoreOption_NoOverlap(t *testing.T) {
	for _, opt := range menuOptions {
		if s := scoreOption("zzzqqq", opt); s != 0 {
			t.Fatalf("scoreOption(zzzqqq, %s) = %d, want 0", opt.Label, s)
		}
	}
}

func TestMatchPalette(t *testing.T) {
	idx, ok := matchPalette("trend")
	if !ok || menuOptions[idx].Label != "Trends" {
		t.Fatalf("matchPalette(trend) = %d, %v", idx, ok)
	}

	idx, ok = matchPalette("profile")
	if !ok || menuOptions[idx].Label != "Profile" {
		t.Fatalf("matchPalette(profile) = %d, %v", idx, ok)
	}

	if _, ok := matchPalette("zzz"); ok {
		t.Fatal("matchPalette(zzz) matched, want no match")
	}
}

func TestMatchPalette_TieGoesToFirstDeclared(t *testing.T) {
	// "t" is an exact alias of Trends and only a prefix elsewhere, so
	// verify tie-breaking with a query that prefix-matches two labels.
	idx, ok := matchPalette("t")
	if !ok || menuOptions[idx].Label != "Trends" {
		t.Fatalf("matchPalette(t) = %d, %v; want Trends", idx, ok)
	}

	// "th" is an alias of Thread and a label prefix of nothing else.
	idx, ok = matchPalette("th")
	if !ok || menuOptions[idx].Label != "Thread" {
		t.Fatalf("matchPalette(th) = %d, %v; want Thread", idx, ok)
	}
}

func TestClipText(t *testing.T) {
	if got := clipText("hello", 10); got != "hello" {
		t.Fatalf("clipText short = %q", got)
	}
	if got := clipText("hello world", 5); got != "hell…" {
		t.Fatalf("clipText truncated = %q", got)
	}
	if got := clipText("hello", 0); got != "" {
		t.Fatalf("clipText zero = %q", got)
	}
}
