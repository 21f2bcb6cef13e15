package screening

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"allergen-guard/internal/core/allergen"
	"allergen-guard/internal/core/queue"
	"allergen-guard/internal/infrastructure/config"
	"allergen-guard/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 成分檢查服務
type Service struct {
	limits config.ScreeningConfig
	queue  *queue.Manager
}

// NewService 創建新的檢查服務，queue 為 nil 時批次請求在呼叫端 goroutine 內執行
func NewService(cfg *config.Config, queueManager *queue.Manager) *Service {
	return &Service{
		limits: cfg.Screening,
		queue:  queueManager,
	}
}

// Check 檢查單一產品
func (s *Service) Check(ctx context.Context, req *CheckRequest) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validateIngredients(req.Ingredients); err != nil {
		return nil, err
	}
	profile, err := s.unifyProfile(req.Prohibited, req.SeverityScale)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := screen(req.Ingredients, profile, req.FoodName)

	common.LogInfo("成分檢查完成",
		zap.Int("ingredient_count", len(req.Ingredients)),
		zap.Int("prohibited_count", len(profile)),
		zap.Int("match_count", len(result.Matches)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// CheckBatch 以同一份禁用清單檢查多個產品，結果順序與輸入相同
func (s *Service) CheckBatch(ctx context.Context, req *BatchRequest) (*BatchResult, error) {
	if len(req.Products) > s.limits.MaxBatchProducts {
		return nil, common.NewValidationError(fmt.Sprintf("too many products: %d (max %d)", len(req.Products), s.limits.MaxBatchProducts))
	}
	for i, p := range req.Products {
		if err := s.validateIngredients(p.Ingredients); err != nil {
			return nil, common.NewValidationError(fmt.Sprintf("products[%d]: %s", i, err.Error()))
		}
	}
	profile, err := s.unifyProfile(req.Prohibited, req.SeverityScale)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{
		BatchID: common.GenerateUUID(),
		Results: make([]ProductResult, len(req.Products)),
	}
	start := time.Now()

	if s.queue == nil {
		for i, p := range req.Products {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			batch.Results[i] = productResult(i, p, profile)
		}
	} else if err := s.runQueued(ctx, req.Products, profile, batch.Results); err != nil {
		common.LogWarn("批次檢查失敗",
			zap.String("batch_id", batch.BatchID),
			zap.Error(err),
		)
		return nil, err
	}

	unsafe := 0
	for _, r := range batch.Results {
		if !r.Safe {
			unsafe++
		}
	}
	common.LogInfo("批次檢查完成",
		zap.String("batch_id", batch.BatchID),
		zap.Int("product_count", len(req.Products)),
		zap.Int("unsafe_count", unsafe),
		zap.Duration("duration", time.Since(start)),
	)
	return batch, nil
}

// runQueued 每個產品排入工作池，全部完成後返回
func (s *Service) runQueued(ctx context.Context, products []Product, profile []allergen.ProhibitedIngredient, out []ProductResult) error {
	pending := make([]<-chan error, 0, len(products))
	for i, p := range products {
		i, p := i, p
		res, err := s.queue.Enqueue(ctx, func(context.Context) error {
			out[i] = productResult(i, p, profile)
			return nil
		})
		if err != nil {
			return err
		}
		pending = append(pending, res)
	}

	for _, res := range pending {
		select {
		case err := <-res:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// ComposeAlert 由既有比對結果組合警示
func (s *Service) ComposeAlert(req *AlertRequest) (*allergen.Alert, error) {
	if len(req.Matches) == 0 {
		return nil, common.ErrNoMatches
	}
	for i, m := range req.Matches {
		if m.Severity < allergen.MinSeverity || m.Severity > allergen.MaxSeverity {
			return nil, common.NewValidationError(fmt.Sprintf("matches[%d]: severity %d outside 1-10 scale", i, m.Severity))
		}
	}
	alert := allergen.ComposeAlert(req.Matches, req.FoodName)
	return &alert, nil
}

// Aliases 查詢名稱展開後的別名與樣式
func (s *Service) Aliases(name string) (*AliasInfo, error) {
	normalized := allergen.Normalize(name)
	if normalized == "" {
		return nil, common.NewValidationError("name is empty after normalization")
	}
	return &AliasInfo{
		Name:       name,
		Normalized: normalized,
		Aliases:    allergen.GetAliases(normalized),
		Patterns:   allergen.PatternsFor(normalized),
		Known:      allergen.KnownAllergen(normalized),
	}, nil
}

// KnownAllergens 列出別名表中可直接查詢的名稱
func (s *Service) KnownAllergens() *AllergenList {
	keys := allergen.KnownAllergens()
	return &AllergenList{Allergens: keys, Count: len(keys)}
}

// Severity 嚴重度對應的標籤、顏色與等級
func (s *Service) Severity(level int) (*SeverityInfo, error) {
	if level < allergen.MinSeverity || level > allergen.MaxSeverity {
		return nil, common.NewValidationError(fmt.Sprintf("severity %d outside 1-10 scale", level))
	}
	return &SeverityInfo{
		Severity: level,
		Label:    allergen.SeverityLabel(level),
		Color:    allergen.SeverityColor(level),
		Class:    allergen.ClassFor(level),
	}, nil
}

func (s *Service) validateIngredients(ingredients []string) error {
	if len(ingredients) > s.limits.MaxIngredients {
		return common.NewValidationError(fmt.Sprintf("too many ingredients: %d (max %d)", len(ingredients), s.limits.MaxIngredients))
	}
	return nil
}

// unifyProfile 驗證禁用清單並轉換為 1–10 刻度，不修改呼叫端的切片
func (s *Service) unifyProfile(prohibited []allergen.ProhibitedIngredient, scaleName string) ([]allergen.ProhibitedIngredient, error) {
	if len(prohibited) > s.limits.MaxProhibited {
		return nil, common.NewValidationError(fmt.Sprintf("too many prohibited ingredients: %d (max %d)", len(prohibited), s.limits.MaxProhibited))
	}
	scale, err := allergen.ParseScale(scaleName)
	if err != nil {
		return nil, common.NewValidationError(err.Error())
	}

	out := make([]allergen.ProhibitedIngredient, len(prohibited))
	for i, p := range prohibited {
		severity, err := scale.ToUnified(p.Severity)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf("prohibited[%d] %q: %s", i, p.Name, err.Error()))
		}
		p.Severity = severity
		out[i] = p
	}
	return out, nil
}

func screen(ingredients []string, profile []allergen.ProhibitedIngredient, foodName string) *Result {
	matches := allergen.CheckForAllergens(ingredients, profile)
	result := &Result{
		Matches: matches,
		Safe:    len(matches) == 0,
	}
	if !result.Safe {
		alert := allergen.ComposeAlert(matches, foodName)
		result.Alert = &alert
	}
	return result
}

func productResult(index int, p Product, profile []allergen.ProhibitedIngredient) ProductResult {
	id := p.ID
	if id == "" {
		id = strconv.Itoa(index)
	}
	return ProductResult{
		ID:       id,
		FoodName: p.FoodName,
		Result:   *screen(p.Ingredients, profile, p.FoodName),
	}
}
