package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCivilDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already normalized",
			input: "2024-03-01",
			want:  "2024-03-01",
		},
		{
			name:  "slash separated",
			input: "2024/3/1",
			want:  "2024-03-01",
		},
		{
			name:  "utc evening rolls into the next warehouse day",
			input: "2024-03-01T16:00:00.000Z",
			want:  "2024-03-02",
		},
		{
			name:  "utc morning stays on the same day",
			input: "2024-03-01T02:00:00Z",
			want:  "2024-03-01",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "garbage",
			input: "not-a-date",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CivilDate(tt.input))
		})
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-01-31"))
	assert.False(t, ValidDate("2024-1-31"))
	assert.False(t, ValidDate(""))
	assert.False(t, ValidDate("2024-13-01"))
}

func TestTransactionStatusHelpers(t *testing.T) {
	repairing := Transaction{Kind: KindRepair}
	assert.True(t, repairing.Repairing())

	done := Transaction{Kind: KindRepair, RepairDate: "2024-05-01"}
	assert.False(t, done.Repairing())

	scrapped := Transaction{Kind: KindRepair, IsScrapped: true}
	assert.False(t, scrapped.Repairing())

	pending := Transaction{Kind: KindInbound}
	assert.True(t, pending.PendingInbound())

	received := Transaction{Kind: KindInbound, IsReceived: true}
	assert.False(t, received.PendingInbound())

	usage := Transaction{Kind: KindUsage}
	assert.False(t, usage.PendingInbound())
	assert.False(t, usage.Repairing())
}

func TestTransactionDateParts(t *testing.T) {
	tx := Transaction{Date: "2025-07-09"}
	assert.Equal(t, "2025", tx.Year())
	assert.Equal(t, "07", tx.Month())

	blank := Transaction{}
	assert.Equal(t, "", blank.Year())
	assert.Equal(t, "", blank.Month())
}
