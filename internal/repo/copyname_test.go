package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyName(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		taken []string
		want  string
	}{
		{
			name: "first copy",
			base: "Piernas",
			want: "Piernas (copia)",
		},
		{
			name:  "second copy gets counter 2",
			base:  "Piernas",
			taken: []string{"Piernas (copia)"},
			want:  "Piernas (copia 2)",
		},
		{
			name:  "counter keeps climbing",
			base:  "Piernas",
			taken: []string{"Piernas (copia)", "Piernas (copia 2)", "Piernas (copia 3)"},
			want:  "Piernas (copia 4)",
		},
		{
			name:  "gap in the sequence is reused",
			base:  "Piernas",
			taken: []string{"Piernas (copia)", "Piernas (copia 3)"},
			want:  "Piernas (copia 2)",
		},
		{
			name:  "unrelated names are ignored",
			base:  "Piernas",
			taken: []string{"Espalda (copia)", "Piernas fuertes"},
			want:  "Piernas (copia)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taken := make(map[string]bool, len(tt.taken))
			for _, n := range tt.taken {
				taken[n] = true
			}
			assert.Equal(t, tt.want, CopyName(tt.base, taken))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "Piernas", escapeLike("Piernas"))
	assert.Equal(t, `100\% piernas`, escapeLike("100% piernas"))
	assert.Equal(t, `push\_day`, escapeLike("push_day"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}
