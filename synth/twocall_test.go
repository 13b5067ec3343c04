package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnumerator serves counts from a script: each sizing call pops the next
// available count and each fill writes min(len(buf), fill) elements.
type fakeEnumerator struct {
	available []uint32
	fill      []uint32
	calls     int
}

func (f *fakeEnumerator) call(count *uint32, buf []int) Status {
	f.calls++
	if buf == nil {
		*count = f.available[0]
		f.available = f.available[1:]
		return StatusSuccess
	}
	n := f.fill[0]
	f.fill = f.fill[1:]
	status := StatusSuccess
	if int(n) > len(buf) {
		n = uint32(len(buf))
		status = StatusIncomplete
	}
	for i := uint32(0); i < n; i++ {
		buf[i] = int(i) + 1
	}
	*count = n
	return status
}

func TestRunTwoCall(t *testing.T) {
	tests := []struct {
		name      string
		available []uint32
		fill      []uint32
		want      []int
		calls     int
	}{
		{name: "exact", available: []uint32{3}, fill: []uint32{3}, want: []int{1, 2, 3}, calls: 2},
		{name: "shrinks", available: []uint32{4}, fill: []uint32{2}, want: []int{1, 2}, calls: 2},
		{name: "grows between calls", available: []uint32{2, 3}, fill: []uint32{5, 3}, want: []int{1, 2, 3}, calls: 4},
		{name: "empty", available: []uint32{0}, want: nil, calls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeEnumerator{available: tt.available, fill: tt.fill}
			got, err := RunTwoCall(f.call)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.calls, f.calls)
		})
	}
}

func TestRunTwoCallError(t *testing.T) {
	got, err := RunTwoCall(func(count *uint32, buf []int) Status {
		if buf == nil {
			*count = 1
			return StatusSuccess
		}
		return StatusError
	})
	assert.Error(t, err)
	assert.Nil(t, got)
}
