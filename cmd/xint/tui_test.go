package main

import (
	"fmt"
	"testing"
)

func TestAppendOutputCapFIFO(t *testing.T) {
	var lines []runnerLine
	total := scrollbackCap + 50
	for i := 0; i < total; i++ {
		lines = appendOutput(lines, runnerLine{Text: fmt.Sprintf("line-%d", i)})
	}

	if len(lines) != scrollbackCap {
		t.Fatalf("scrollback length = %d, want %d", len(lines), scrollbackCap)
	}
	if lines[0].Text != "line-50" {
		t.Fatalf("oldest retained line = %q, want line-50", lines[0].Text)
	}
	if lines[len(lines)-1].Text != fmt.Sprintf("line-%d", total-1) {
		t.Fatalf("newest line = %q", lines[len(lines)-1].Text)
	}
}

func TestAppendOutputTrimsTrailingWhitespace(t *testing.T) {
	lines := appendOutput(nil, runnerLine{Text: "hello   \t\r"})
	if lines[0].Text != "hello" {
		t.Fatalf("appendOutput kept trailing whitespace: %q", lines[0].Text)
	}
}

func TestFilterOutput(t *testing.T) {
	lines := []runnerLine{
		{Text: "Fetching profile @nasa"},
		{Text: "rate limit hit", Stderr: true},
		{Text: "done"},
	}

	all := filterOutput(lines, "")
	if len(all) != 3 {
		t.Fatalf("unfiltered length = %d, want 3", len(all))
	}
	if all[1] != "! rate limit hit" {
		t.Fatalf("stderr line = %q, want prefixed", all[1])
	}

	matched := filterOutput(lines, "PROFILE")
	if len(matched) != 1 || matched[0] != "Fetching profile @nasa" {
		t.Fatalf("filtered = %v", matched)
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"classic", "minimal", "neon"} {
		if got := themeByName(name).name; got != name {
			t.Fatalf("themeByName(%q).name = %q", name, got)
		}
	}
	if got := themeByName("bogus").name; got != "classic" {
		t.Fatalf("unknown theme fell back to %q, want classic", got)
	}
}

func TestPromptForKey(t *testing.T) {
	spec, ok := promptForKey("1")
	if !ok || spec.field != "query" || !spec.required {
		t.Fatalf("promptForKey(1) = %+v, %v", spec, ok)
	}
	spec, ok = promptForKey("2")
	if !ok || spec.required {
		t.Fatalf("trends location must be optional, got %+v", spec)
	}
	if _, ok := promptForKey("6"); ok {
		t.Fatal("help must not prompt")
	}
	if _, ok := promptForKey("0"); ok {
		t.Fatal("exit must not prompt")
	}
}

func TestResultFromWait(t *testing.T) {
	if r := resultFromWait(nil); !r.Success || r.Status != "success" {
		t.Fatalf("resultFromWait(nil) = %+v", r)
	}
}
