package extract

import (
	"reflect"
	"testing"
)

func TestValidNumber(t *testing.T) {
	cases := map[string]bool{
		"+923001234567":   true,
		"923001234567":    true,
		"03001234567":     true,
		"3001234567":      true,
		"  03001234567 ":  true,
		"+9230012345":     false,
		"+92300123456789": false,
		"3520112345671":   false,
		"not-a-number":    false,
		"":                false,
	}
	for in, want := range cases {
		if got := ValidNumber(in); got != want {
			t.Fatalf("ValidNumber(%q)=%v, want %v", in, got, want)
		}
	}
}

func TestNumbersBlock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{name: "absent", content: "Name: A", ok: false},
		{name: "to end", content: "Associated Numbers: 03001234567", want: "03001234567", ok: true},
		{name: "trailing newline", content: "Associated Numbers: 03001234567\n", want: "03001234567", ok: true},
		{name: "blank line", content: "Associated Numbers: 1\n2\n\n3", want: "1\n2", ok: true},
		{name: "next label", content: "Associated Number: 1\nCity: Lahore", want: "1", ok: true},
		{name: "lower case label line", content: "associated numbers: 1\ncity: x", want: "1", ok: true},
		{name: "arrow lines continue", content: "Associated Numbers:\n➤ 1\n➤ 2\n\nEnd", want: "➤ 1\n➤ 2", ok: true},
		{name: "digit lines continue", content: "Associated Numbers: 1\n2\n3", want: "1\n2\n3", ok: true},
		{name: "markup line continues", content: "Associated Numbers: 1\n<br>2", want: "1\n<br>2", ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numbersBlock(tt.content)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("numbersBlock(%q)=(%q,%v), want (%q,%v)", tt.content, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFindNumbers(t *testing.T) {
	got := findNumbers("➤ +923001234567\n➤ 923111234567 and 03221234567, 12345")
	want := []string{"+923001234567", "923111234567", "03221234567"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("findNumbers=%v, want %v", got, want)
	}
}

func TestSplitNumbers(t *testing.T) {
	got := splitNumbers("1,2\n3➤4•5-6")
	want := []string{"1", "2", "3", "4", "5", "6"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitNumbers=%v, want %v", got, want)
	}
}
