package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRejectedHeader(t *testing.T) {
	t.Parallel()

	for _, h := range []string{"", "nan", "NaN", "NAN", "Unnamed: 3", " ", " Unnamed: 0 "} {
		assert.True(t, IsRejectedHeader(h), "header %q should be rejected", h)
	}
	for _, h := range []string{"毛利", "unnamed", "My Unnamed", "nana", "日", "0"} {
		assert.False(t, IsRejectedHeader(h), "header %q should be kept", h)
	}
}

func TestReconcileColumns(t *testing.T) {
	t.Parallel()

	headers := []string{" 日 ", "毛利", "", "Unnamed: 3", "nan", "毛利", "來客數", "Nan", "門號 "}
	cols := ReconcileColumns(headers)

	assert.Equal(t, []Column{
		{Index: 0, Name: "日"},
		{Index: 1, Name: "毛利"},
		{Index: 6, Name: "來客數"},
		{Index: 8, Name: "門號"},
	}, cols)
}

func TestReconcileHeaders_CasePreserved(t *testing.T) {
	t.Parallel()

	got := ReconcileHeaders([]string{"VIVO手機", "vivo手機", "VIVO手機"})
	assert.Equal(t, []string{"VIVO手機", "vivo手機"}, got)
}

func TestReconcileHeaders_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{},
		{"", "nan"},
		{"日", "毛利", "", "Unnamed: 3"},
		{" a ", "a", "b", "NaN", "b ", "Unnamed", "c"},
	}
	for _, headers := range inputs {
		once := ReconcileHeaders(headers)
		twice := ReconcileHeaders(once)
		assert.Equal(t, once, twice)
	}
}
