package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		tag   string
		span  int
	}{
		{"#people", "#people", 0},
		{"#goals_+2", "#goals", 2},
		{"#goals_+1", "#goals", 1},
		// Malformed span suffixes demote to plain tags
		{"#goals_+0", "#goals", 0},
		{"#goals_+-3", "#goals", 0},
		{"#goals_+abc", "#goals", 0},
		{"#goals_2", "#goals", 0},
		{"#goals_", "#goals", 0},
		{"#a_b_+2", "#a", 0}, // suffix "b_+2" has no leading +
	}
	for _, tt := range tests {
		tag, span := Parse(tt.token)
		assert.Equal(t, tt.tag, tag, tt.token)
		assert.Equal(t, tt.span, span, tt.token)
	}
}

func TestFind(t *testing.T) {
	assert.Equal(t, []string{"#people", "#goals_+2"},
		Find("Met Bob #people then planned #goals_+2 things"))
	assert.Nil(t, Find("no tags here"))
}

func TestStrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Met with Bob #people", "Met with Bob"},
		{"#goals_+1 Big plan", "Big plan"},
		{"a #x middle #y b", "a middle b"},
		{"no tags", "no tags"},
		{"#only", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Strip(tt.in), tt.in)
	}
}
