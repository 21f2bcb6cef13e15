package allergen

import (
	"regexp"
	"slices"
	"sort"
)

// 別名群組，所有字串皆為已正規化形式
// 同一群組可被多個使用者輸入的名稱共用
// 多字別名會拆成單字逐一比對，片語中每個字都必須指向該過敏原（如 brazil nut），
// 不可帶入 salt 或 oil 之類的通用字
var (
	milkAliases = []string{
		"milk", "dairy", "cream", "butter", "buttermilk", "cheese", "whey", "casein",
		"caseinate", "lactose", "lactalbumin", "lactoglobulin", "ghee", "yogurt",
		"yoghurt", "curd", "curds", "kefir", "custard", "ricotta", "mozzarella",
		"parmesan", "cheddar", "paneer", "milkfat",
	}

	eggAliases = []string{
		"egg", "eggs", "albumen", "albumin", "ovalbumin", "ovomucoid", "lysozyme",
		"mayonnaise", "meringue", "yolk",
	}

	peanutAliases = []string{
		"peanut", "peanuts", "groundnut", "groundnuts", "arachis", "goober", "goobers",
	}

	treeNutAliases = []string{
		"nut", "nuts", "tree nut", "tree nuts", "almond", "almonds", "cashew", "cashews",
		"walnut", "walnuts", "pecan", "pecans", "pistachio", "pistachios", "hazelnut",
		"hazelnuts", "filbert", "filberts", "macadamia", "brazil nut", "chestnut",
		"praline", "marzipan", "gianduja", "nougat",
	}

	soyAliases = []string{
		"soy", "soya", "soybean", "soybeans", "edamame", "tofu", "tempeh", "miso",
		"shoyu", "tamari", "natto",
	}

	wheatAliases = []string{
		"wheat", "semolina", "durum", "spelt", "farina", "bulgur", "couscous", "seitan",
		"einkorn", "emmer", "kamut", "farro",
	}

	glutenAliases = []string{
		"gluten", "wheat", "semolina", "durum", "spelt", "farina", "bulgur", "couscous",
		"seitan", "einkorn", "emmer", "kamut", "farro", "barley", "rye", "triticale",
	}

	fishAliases = []string{
		"fish", "anchovy", "anchovies", "cod", "salmon", "tuna", "trout", "tilapia",
		"haddock", "pollock", "sardine", "sardines", "mackerel", "herring", "halibut",
		"bass", "surimi",
	}

	shellfishAliases = []string{
		"shellfish", "crustacean", "crustaceans", "shrimp", "shrimps", "prawn", "prawns",
		"crab", "lobster", "crayfish", "crawfish", "langoustine", "krill", "scampi",
		"clam", "clams", "mussel", "mussels", "oyster", "oysters", "scallop", "scallops",
		"squid", "calamari", "octopus",
	}

	sesameAliases = []string{
		"sesame", "tahini", "tahina", "benne", "gingelly",
	}

	mustardAliases = []string{"mustard", "mustards"}

	celeryAliases = []string{"celery", "celeriac"}

	lupinAliases = []string{"lupin", "lupine", "lupins", "lupini"}

	sulfiteAliases = []string{
		"sulfite", "sulfites", "sulphite", "sulphites", "bisulfite", "bisulphite",
		"metabisulfite", "metabisulphite",
	}

	cornAliases = []string{
		"corn", "maize", "cornstarch", "cornmeal", "cornflour", "polenta", "grits",
		"hominy",
	}
)

// aliasTable 使用者輸入名稱（正規化後）對應別名集合
var aliasTable = map[string][]string{
	"milk":        milkAliases,
	"dairy":       milkAliases,
	"lactose":     milkAliases,
	"egg":         eggAliases,
	"eggs":        eggAliases,
	"peanut":      peanutAliases,
	"peanuts":     peanutAliases,
	"groundnut":   peanutAliases,
	"groundnuts":  peanutAliases,
	"nut":         treeNutAliases,
	"nuts":        treeNutAliases,
	"tree nut":    treeNutAliases,
	"tree nuts":   treeNutAliases,
	"soy":         soyAliases,
	"soya":        soyAliases,
	"soybean":     soyAliases,
	"soybeans":    soyAliases,
	"wheat":       wheatAliases,
	"gluten":      glutenAliases,
	"fish":        fishAliases,
	"shellfish":   shellfishAliases,
	"crustacean":  shellfishAliases,
	"crustaceans": shellfishAliases,
	"seafood":     concatAliases([]string{"seafood"}, fishAliases, shellfishAliases),
	"sesame":      sesameAliases,
	"mustard":     mustardAliases,
	"celery":      celeryAliases,
	"lupin":       lupinAliases,
	"lupine":      lupinAliases,
	"sulfite":     sulfiteAliases,
	"sulfites":    sulfiteAliases,
	"sulphite":    sulfiteAliases,
	"sulphites":   sulfiteAliases,
	"corn":        cornAliases,
	"maize":       cornAliases,
}

// 第二輪比對用的正規表示式，不使用巢狀量詞
var (
	milkPatterns      = []string{`\blacto[a-z]+`, `\bcasein[a-z]*`}
	eggPatterns       = []string{`\bovo-?[a-z]+`, `\balbum[ei]n\b`, `\be\s?1105\b`}
	peanutPatterns    = []string{`\barachis\b`, `\bground\s?nuts?\b`}
	soyPatterns       = []string{`\bsoy[a-z]*`, `\bglycine\s+max\b`}
	wheatPatterns     = []string{`\benriched\s+flour\b`, `\bgraham\b`, `\btriticum\b`}
	glutenPatterns    = []string{`\bmalt(ed)?\b`, `\benriched\s+flour\b`, `\bbrewer'?s\s+yeast\b`}
	fishPatterns      = []string{`\b[a-z]+fish\b`}
	shellfishPatterns = []string{`\bcrusta[a-z]+`, `\bmollus[ck][a-z]*`}
	sesamePatterns    = []string{`\bsesam[a-z]*`}
	sulfitePatterns   = []string{`\be\s?-?22[0-8]\b`, `\bsulph?ur\s+dioxide\b`}
)

var patternTable = compilePatterns(map[string][]string{
	"milk":        milkPatterns,
	"dairy":       milkPatterns,
	"lactose":     milkPatterns,
	"egg":         eggPatterns,
	"eggs":        eggPatterns,
	"peanut":      peanutPatterns,
	"peanuts":     peanutPatterns,
	"soy":         soyPatterns,
	"soya":        soyPatterns,
	"wheat":       wheatPatterns,
	"gluten":      glutenPatterns,
	"fish":        fishPatterns,
	"seafood":     concatAliases(fishPatterns, shellfishPatterns),
	"shellfish":   shellfishPatterns,
	"crustacean":  shellfishPatterns,
	"crustaceans": shellfishPatterns,
	"sesame":      sesamePatterns,
	"sulfite":     sulfitePatterns,
	"sulfites":    sulfitePatterns,
	"sulphite":    sulfitePatterns,
	"sulphites":   sulfitePatterns,
})

// compilePatterns 啟動時編譯所有樣式，一律不分大小寫
func compilePatterns(src map[string][]string) map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(src))
	for key, sources := range src {
		compiled := make([]*regexp.Regexp, 0, len(sources))
		for _, p := range sources {
			compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
		}
		out[key] = compiled
	}
	return out
}

func concatAliases(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// KnownAllergen 名稱是否為別名表中的鍵
func KnownAllergen(name string) bool {
	_, ok := aliasTable[Normalize(name)]
	return ok
}

// PatternsFor 回傳名稱對應的樣式原始字串
func PatternsFor(name string) []string {
	compiled := patternTable[Normalize(name)]
	out := make([]string, 0, len(compiled))
	for _, re := range compiled {
		out = append(out, re.String())
	}
	return out
}

// KnownAllergens 回傳所有別名表鍵，依字母排序
func KnownAllergens() []string {
	keys := make([]string, 0, len(aliasTable))
	for k := range aliasTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAliases 展開已正規化的名稱為所有應視為相符的字串
// 不在表中時以單複數變化補上一個變體
func GetAliases(normalizedName string) []string {
	if aliases, ok := aliasTable[normalizedName]; ok {
		return slices.Clone(aliases)
	}
	if len(normalizedName) > 0 && normalizedName[len(normalizedName)-1] == 's' {
		return []string{normalizedName, normalizedName[:len(normalizedName)-1]}
	}
	return []string{normalizedName, normalizedName + "s"}
}
