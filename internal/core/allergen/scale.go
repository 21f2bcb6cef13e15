package allergen

import (
	"fmt"
)

// Scale 呼叫端使用的嚴重度刻度
type Scale string

const (
	ScaleTen   Scale = "1-10"
	ScaleThree Scale = "1-3"
)

const (
	MinSeverity = 1
	MaxSeverity = 10
)

// legacySeverity 1–3 刻度線性對應至 1–10
var legacySeverity = map[int]int{1: 3, 2: 6, 3: 9}

// ParseScale 解析刻度名稱，空字串視為 1-10
func ParseScale(s string) (Scale, error) {
	switch Scale(s) {
	case "", ScaleTen:
		return ScaleTen, nil
	case ScaleThree:
		return ScaleThree, nil
	default:
		return "", fmt.Errorf("unknown severity scale %q", s)
	}
}

// MapLegacySeverity 將 1–3 刻度的嚴重度轉為 1–10
func MapLegacySeverity(level int) (int, error) {
	mapped, ok := legacySeverity[level]
	if !ok {
		return 0, fmt.Errorf("severity %d outside 1-3 scale", level)
	}
	return mapped, nil
}

// ToUnified 依刻度驗證並轉換嚴重度
func (s Scale) ToUnified(severity int) (int, error) {
	if s == ScaleThree {
		return MapLegacySeverity(severity)
	}
	if severity < MinSeverity || severity > MaxSeverity {
		return 0, fmt.Errorf("severity %d outside 1-10 scale", severity)
	}
	return severity, nil
}
