package screening

import "allergen-guard/internal/core/allergen"

// CheckRequest 單一產品的檢查請求
type CheckRequest struct {
	Ingredients   []string                        `json:"ingredients"`
	Prohibited    []allergen.ProhibitedIngredient `json:"prohibited"`
	FoodName      string                          `json:"food_name,omitempty"`
	SeverityScale string                          `json:"severity_scale,omitempty"`
}

// Result 檢查結果，沒有比對時 Alert 為 nil
type Result struct {
	Matches []allergen.AllergenMatch `json:"matches"`
	Safe    bool                     `json:"safe"`
	Alert   *allergen.Alert          `json:"alert,omitempty"`
}

// Product 批次中的單一產品
type Product struct {
	ID          string   `json:"id,omitempty"`
	FoodName    string   `json:"food_name,omitempty"`
	Ingredients []string `json:"ingredients"`
}

// BatchRequest 以同一份禁用清單檢查多個產品
type BatchRequest struct {
	Products      []Product                       `json:"products"`
	Prohibited    []allergen.ProhibitedIngredient `json:"prohibited"`
	SeverityScale string                          `json:"severity_scale,omitempty"`
}

// ProductResult 批次中單一產品的結果
type ProductResult struct {
	ID       string `json:"id"`
	FoodName string `json:"food_name,omitempty"`
	Result
}

// BatchResult 批次結果，順序與請求相同
type BatchResult struct {
	BatchID string          `json:"batch_id"`
	Results []ProductResult `json:"results"`
}

// AlertRequest 由既有比對結果組合警示
type AlertRequest struct {
	Matches  []allergen.AllergenMatch `json:"matches"`
	FoodName string                   `json:"food_name,omitempty"`
}

// AliasInfo 別名查詢結果
type AliasInfo struct {
	Name       string   `json:"name"`
	Normalized string   `json:"normalized"`
	Aliases    []string `json:"aliases"`
	Patterns   []string `json:"patterns"`
	Known      bool     `json:"known"`
}

// AllergenList 別名表內建的過敏原名稱
type AllergenList struct {
	Allergens []string `json:"allergens"`
	Count     int      `json:"count"`
}

// SeverityInfo 嚴重度的顯示資訊
type SeverityInfo struct {
	Severity int                    `json:"severity"`
	Label    string                 `json:"label"`
	Color    allergen.ColorToken    `json:"color"`
	Class    allergen.SeverityClass `json:"class"`
}
