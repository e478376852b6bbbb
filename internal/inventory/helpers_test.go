package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBarcodes(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{
			name:  "tek string",
			input: "123456",
			want:  []string{"123456"},
		},
		{
			name:  "liste",
			input: []any{"A", "B"},
			want:  []string{"A", "B"},
		},
		{
			name:  "tekrarlar ve boşluklar tekilleştirilir",
			input: []any{"A", "A", " A "},
			want:  []string{"A"},
		},
		{
			name:  "boş stringler atılır",
			input: []any{"", "  ", "B"},
			want:  []string{"B"},
		},
		{
			name:  "hiç gelmemiş",
			input: nil,
			want:  []string{},
		},
		{
			name:  "geçersiz şekil boş set sayılır",
			input: map[string]any{"x": 1},
			want:  []string{},
		},
		{
			name:  "liste içindeki string olmayanlar atılır",
			input: []any{"A", 42, true},
			want:  []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeBarcodes(tt.input))
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int
		wantErr bool
	}{
		{name: "json sayısı", input: float64(5), want: 5},
		{name: "string sayı", input: "7", want: 7},
		{name: "boşluklu string", input: " 12 ", want: 12},
		{name: "go int", input: 3, want: 3},
		{name: "sayı olmayan string", input: "bol", wantErr: true},
		{name: "bool", input: true, wantErr: true},
		{name: "nil", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceInt(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
