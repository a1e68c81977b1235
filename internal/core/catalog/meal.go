package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"recipe-finder/internal/core/pricing"
)

// MaxIngredients TheMealDB 每道菜固定提供 20 組食材欄位
const MaxIngredients = 20

// Meal 完整的食譜資料，JSON 形狀與 TheMealDB 相同
type Meal struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Thumbnail    string
	Tags         string
	YouTube      string
	Source       string

	ingredients [MaxIngredients]string
	measures    [MaxIngredients]string
}

// MealSummary filter.php 回傳的精簡資料
type MealSummary struct {
	ID        string `json:"idMeal"`
	Name      string `json:"strMeal"`
	Thumbnail string `json:"strMealThumb"`
}

// Ingredients 取出非空白的食材與份量，順序與欄位編號相同
func (m *Meal) Ingredients() []pricing.IngredientRequest {
	items := make([]pricing.IngredientRequest, 0, MaxIngredients)
	for i := 0; i < MaxIngredients; i++ {
		name := strings.TrimSpace(m.ingredients[i])
		if name == "" {
			continue
		}
		items = append(items, pricing.IngredientRequest{
			Ingredient: name,
			Measure:    strings.TrimSpace(m.measures[i]),
		})
	}
	return items
}

// SetIngredient 設定第 n 組（從 1 開始）食材與份量
func (m *Meal) SetIngredient(n int, ingredient, measure string) {
	if n < 1 || n > MaxIngredients {
		return
	}
	m.ingredients[n-1] = ingredient
	m.measures[n-1] = measure
}

// UnmarshalJSON 讀取 TheMealDB 的扁平欄位；null 視為空字串
func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}

	*m = Meal{
		ID:           str("idMeal"),
		Name:         str("strMeal"),
		Category:     str("strCategory"),
		Area:         str("strArea"),
		Instructions: str("strInstructions"),
		Thumbnail:    str("strMealThumb"),
		Tags:         str("strTags"),
		YouTube:      str("strYoutube"),
		Source:       str("strSource"),
	}
	for i := 0; i < MaxIngredients; i++ {
		n := strconv.Itoa(i + 1)
		m.ingredients[i] = str("strIngredient" + n)
		m.measures[i] = str("strMeasure" + n)
	}
	return nil
}

// MarshalJSON 輸出與 TheMealDB 相同的欄位名稱
func (m Meal) MarshalJSON() ([]byte, error) {
	out := map[string]string{
		"idMeal":          m.ID,
		"strMeal":         m.Name,
		"strCategory":     m.Category,
		"strArea":         m.Area,
		"strInstructions": m.Instructions,
		"strMealThumb":    m.Thumbnail,
		"strTags":         m.Tags,
		"strYoutube":      m.YouTube,
		"strSource":       m.Source,
	}
	for i := 0; i < MaxIngredients; i++ {
		n := strconv.Itoa(i + 1)
		out["strIngredient"+n] = m.ingredients[i]
		out["strMeasure"+n] = m.measures[i]
	}
	return json.Marshal(out)
}
