package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"exact", "Chicken", "pollo"},
		{"exact after normalize", "Large Potatoes", "patata"},
		{"exact multi word", "Olive Oil", "aceite de oliva"},
		{"exact wins over earlier partial key", "Garlic Cloves", "dientes de ajo"},
		{"partial", "Chicken Breast", "pollo"},
		{"partial takes first key in order", "chopped garlic cloves", "ajo"},
		{"unknown returns raw", "Dragonfruit", "Dragonfruit"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.in))
		})
	}
}

func TestSearchTerm(t *testing.T) {
	assert.Equal(t, "pollo", SearchTerm("Chicken Breast"))
	assert.Equal(t, "aceite de oliva", SearchTerm("Olive Oil"))
	// 重音字母在正規化時被移除
	assert.Equal(t, "championes", SearchTerm("Mushrooms"))
	assert.Equal(t, "dragonfruit", SearchTerm("Dragonfruit"))
}
