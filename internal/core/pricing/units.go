package pricing

import "strings"

// gramsPerUnit 近似換算表；體積單位以水的密度換算（1 ml ≈ 1 g）
var gramsPerUnit = map[string]float64{
	// Weight
	"g":         1,
	"gram":      1,
	"grams":     1,
	"kg":        1000,
	"kilogram":  1000,
	"kilograms": 1000,
	"oz":        28.35,
	"ounce":     28.35,
	"ounces":    28.35,
	"lb":        453.59,
	"lbs":       453.59,
	"pound":     453.59,
	"pounds":    453.59,

	// Volume
	"ml":          1,
	"milliliter":  1,
	"milliliters": 1,
	"l":           1000,
	"liter":       1000,
	"liters":      1000,
	"cup":         240,
	"cups":        240,
	"tbsp":        15,
	"tablespoon":  15,
	"tablespoons": 15,
	"tsp":         5,
	"teaspoon":    5,
	"teaspoons":   5,
	"pint":        473,
	"pints":       473,
	"quart":       946,
	"quarts":      946,
}

// ToGrams 換算成公克；未知單位當作公克（係數 1）
func ToGrams(amount float64, unit string) float64 {
	factor, ok := gramsPerUnit[strings.ToLower(unit)]
	if !ok {
		factor = 1
	}
	return amount * factor
}

// ProportionalPrice 依公克數計算每公斤價格對應的金額
func ProportionalPrice(pricePerKilo, grams float64) float64 {
	return pricePerKilo * grams / 1000
}
