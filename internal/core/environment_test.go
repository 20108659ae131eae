package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
	}{
		{"production", Production},
		{" PRODUCTION ", Production},
		{"staging", Staging},
		{"testing", Testing},
		{"development", Development},
		{"", Development},
		{"qa", Development},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseEnvironment(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == Production, got.IsProduction())
		})
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var n Nower = FixedClock{T: at}
	assert.True(t, n.Now().Equal(at))
}
