package pricing

import "strings"

// translation 英文→西班牙文的一組對應
type translation struct {
	english string
	spanish string
}

// translations 依序比對；部分比對時先出現的較短鍵會蓋過後面較長的鍵
var translations = []translation{
	// Vegetables
	{"potato", "patata"},
	{"potatoes", "patatas"},
	{"small potato", "patata"},
	{"small potatoes", "patatas"},
	{"carrot", "zanahoria"},
	{"carrots", "zanahorias"},
	{"onion", "cebolla"},
	{"onions", "cebollas"},
	{"tomato", "tomate"},
	{"tomatoes", "tomates"},
	{"cabbage", "repollo"},
	{"lettuce", "lechuga"},
	{"spinach", "espinacas"},
	{"broccoli", "brocoli"},
	{"cauliflower", "coliflor"},
	{"pepper", "pimiento"},
	{"bell pepper", "pimiento"},
	{"garlic", "ajo"},
	{"garlic clove", "diente de ajo"},
	{"garlic cloves", "dientes de ajo"},
	{"ginger", "jengibre"},
	{"cucumber", "pepino"},
	{"zucchini", "calabacin"},
	{"eggplant", "berenjena"},
	{"mushroom", "champiñon"},
	{"mushrooms", "champiñones"},
	{"celery", "apio"},
	{"leek", "puerro"},
	{"leeks", "puerros"},

	// Fruits
	{"apple", "manzana"},
	{"banana", "platano"},
	{"orange", "naranja"},
	{"lemon", "limon"},
	{"lime", "lima"},
	{"strawberry", "fresa"},
	{"strawberries", "fresas"},

	// Herbs & spices
	{"parsley", "perejil"},
	{"cilantro", "cilantro"},
	{"basil", "albahaca"},
	{"oregano", "orégano"},
	{"thyme", "tomillo"},
	{"rosemary", "romero"},
	{"bay leaf", "laurel"},
	{"bay leaves", "laurel"},

	// Beans & legumes
	{"beans", "judías"},
	{"chickpeas", "garbanzos"},
	{"lentils", "lentejas"},
	{"black beans", "judías negras"},
	{"kidney beans", "judías rojas"},

	// Dairy & meat
	{"milk", "leche"},
	{"butter", "mantequilla"},
	{"cheese", "queso"},
	{"eggs", "huevos"},
	{"chicken", "pollo"},
	{"beef", "ternera"},
	{"pork", "cerdo"},
	{"fish", "pescado"},

	// Grains & pasta
	{"rice", "arroz"},
	{"pasta", "pasta"},
	{"bread", "pan"},
	{"flour", "harina"},

	// Oils & vinegars
	{"oil", "aceite"},
	{"olive oil", "aceite de oliva"},
	{"vinegar", "vinagre"},

	// Other
	{"wine", "vino"},
	{"water", "agua"},
	{"beer", "cerveza"},
	{"stock", "caldo"},
	{"broth", "caldo"},
	{"noodles", "fideos"},
	{"salt", "sal"},
	{"sugar", "azucar"},
	{"honey", "miel"},
}

// exactTranslations 完全比對用的索引，與 translations 同時建立且不再修改
var exactTranslations = func() map[string]string {
	m := make(map[string]string, len(translations))
	for _, t := range translations {
		if _, ok := m[t.english]; !ok {
			m[t.english] = t.spanish
		}
	}
	return m
}()

// Translate 將英文食材名稱轉成西班牙文搜尋詞。
// 先完全比對正規化後的名稱，再依字典順序找第一個被包含的英文鍵；
// 都沒有時原樣回傳 raw。
func Translate(raw string) string {
	normalized := Normalize(raw)
	if spanish, ok := exactTranslations[normalized]; ok {
		return spanish
	}

	for _, t := range translations {
		if strings.Contains(normalized, t.english) {
			return t.spanish
		}
	}

	return raw
}
