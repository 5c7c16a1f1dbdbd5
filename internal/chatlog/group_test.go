package chatlog

import (
	"reflect"
	"testing"
)

func TestGroupCombinesByNickname(t *testing.T) {
	fragments := []Fragment{
		{Nickname: "Alice", Time: "10:00", Text: "사과 2개"},
		{Nickname: "Bob", Time: "10:05", Text: "배 1개"},
		{Nickname: "Alice", Time: "10:10", Text: "귤 3개"},
	}

	orders := Group(fragments)
	if len(orders) != 2 {
		t.Fatalf("Expected 2 combined orders, got %d", len(orders))
	}

	alice := orders[0]
	if alice.Nickname != "Alice" {
		t.Fatalf("Expected Alice first, got %s", alice.Nickname)
	}
	if alice.OrderText != "[10:00] 사과 2개\n[10:10] 귤 3개" {
		t.Errorf("Unexpected order text: %q", alice.OrderText)
	}
	if alice.FirstTime != "10:00" || alice.LatestTime != "10:10" {
		t.Errorf("Unexpected times: first=%q latest=%q", alice.FirstTime, alice.LatestTime)
	}
}

func TestGroupNicknameMatchIsExact(t *testing.T) {
	fragments := []Fragment{
		{Nickname: "alice", Time: "10:00", Text: "사과 1개"},
		{Nickname: "Alice", Time: "10:05", Text: "사과 2개"},
	}
	if got := Group(fragments); len(got) != 2 {
		t.Errorf("Case-different nicknames merged: got %d orders", len(got))
	}
}

func TestGroupLatestTimeIsLexicographic(t *testing.T) {
	// Raw time strings compare as strings, not as clock values.
	fragments := []Fragment{
		{Nickname: "Alice", Time: "오후 2:00", Text: "사과 1개"},
		{Nickname: "Alice", Time: "오전 9:00", Text: "배 1개"},
	}
	orders := Group(fragments)
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	// "오후" > "오전" lexicographically, which here happens to agree with the
	// clock; the invariant under test is string comparison.
	if orders[0].LatestTime != "오후 2:00" {
		t.Errorf("Expected lexicographic max, got %q", orders[0].LatestTime)
	}
	if orders[0].FirstTime != "오후 2:00" {
		t.Errorf("FirstTime must be the first fragment's time, got %q", orders[0].FirstTime)
	}
}

func TestGroupSortsByKoreanCollation(t *testing.T) {
	fragments := []Fragment{
		{Nickname: "하늘", Time: "10:00", Text: "사과 1개"},
		{Nickname: "가람", Time: "10:01", Text: "배 1개"},
		{Nickname: "나래", Time: "10:02", Text: "귤 1개"},
	}
	orders := Group(fragments)
	want := []string{"가람", "나래", "하늘"}
	for i, w := range want {
		if orders[i].Nickname != w {
			t.Errorf("Position %d: expected %q, got %q", i, w, orders[i].Nickname)
		}
	}
}

func TestParseAndGroupIsIdempotent(t *testing.T) {
	transcript := "[하늘] [10:00] 사과 2개\n[가람] [10:05] 배 1개\n추가로 귤 3개\n[하늘] [10:10] 포도 1개"
	p := NewParser("")

	first := Group(p.Parse(transcript))
	second := Group(p.Parse(transcript))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Re-running parse+group changed the output:\n%+v\n%+v", first, second)
	}
}
