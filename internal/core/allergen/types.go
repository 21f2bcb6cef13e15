package allergen

// ProhibitedIngredient 使用者設定需避免的成分
type ProhibitedIngredient struct {
	Name     string `json:"name"`             // 使用者輸入的名稱，未經正規化
	Severity int    `json:"severity"`         // 1（最輕）到 10（最嚴重）
	Reason   string `json:"reason,omitempty"` // 原樣帶入警示訊息
}

// AllergenMatch 單一禁用成分的比對結果
type AllergenMatch struct {
	ProhibitedIngredient string   `json:"prohibited_ingredient"`
	FoundIn              []string `json:"found_in"` // 觸發比對的原始成分字串
	Severity             int      `json:"severity"`
	Reason               string   `json:"reason,omitempty"`
}

// SeverityClass 警示等級
type SeverityClass string

const (
	ClassWarning SeverityClass = "warning"
	ClassDanger  SeverityClass = "danger"
)

// ColorToken 嚴重度顏色
type ColorToken string

const (
	ColorEmergency ColorToken = "#B71C1C"
	ColorHighRisk  ColorToken = "#E65100"
	ColorModerate  ColorToken = "#F9A825"
	ColorLowRisk   ColorToken = "#2E7D32"
)

// Alert 組合後的警示內容
type Alert struct {
	Title           string          `json:"title"`
	Message         string          `json:"message"`
	SeverityClass   SeverityClass   `json:"severity_class"`
	HighestSeverity int             `json:"highest_severity"`
	Matches         []AllergenMatch `json:"matches"`
}
