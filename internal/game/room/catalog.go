package room

import "math"

// Suit 花色（Weight 大者胜）
type Suit struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Weight int    `json:"w"`
}

// Suits 固定花色表，比牌时黑桃最大
var Suits = []Suit{
	{ID: "spade", Label: "黑桃", Weight: 4},
	{ID: "heart", Label: "红桃", Weight: 3},
	{ID: "club", Label: "梅花", Weight: 2},
	{ID: "diamond", Label: "方块", Weight: 1},
}

// Ranks 固定点数表，权重按表内位置（索引+1），与字面大小无关
var Ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// HandType 牌型目录条目
type HandType struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Rank int     `json:"rank"` // 强度档位，大者胜
	Mul  float64 `json:"mul"`  // 赔付倍数
	On   bool    `json:"on"`   // 是否启用
}

// typeTemplate 牌型模板，建房时按此生成目录
var typeTemplate = []HandType{
	{ID: "no_niu", Name: "没牛", Rank: 0, Mul: 1, On: true},
	{ID: "niu_1", Name: "牛1", Rank: 1, Mul: 1, On: true},
	{ID: "niu_2", Name: "牛2", Rank: 2, Mul: 1, On: true},
	{ID: "niu_3", Name: "牛3", Rank: 3, Mul: 1, On: true},
	{ID: "niu_4", Name: "牛4", Rank: 4, Mul: 1, On: true},
	{ID: "niu_5", Name: "牛5", Rank: 5, Mul: 1, On: true},
	{ID: "niu_6", Name: "牛6", Rank: 6, Mul: 1, On: true},
	{ID: "niu_7", Name: "牛7", Rank: 7, Mul: 2, On: true},
	{ID: "niu_8", Name: "牛8", Rank: 8, Mul: 2, On: true},
	{ID: "niu_9", Name: "牛9", Rank: 9, Mul: 3, On: true},
	{ID: "niu_niu", Name: "牛牛", Rank: 10, Mul: 4, On: true},
	{ID: "wu_hua", Name: "五花牛", Rank: 11, Mul: 5, On: false},
	{ID: "zha_dan", Name: "炸弹牛", Rank: 12, Mul: 6, On: false},
	{ID: "wu_xiao", Name: "五小牛", Rank: 13, Mul: 8, On: false},
}

// DefaultTypes 返回牌型模板的副本
func DefaultTypes() []HandType {
	types := make([]HandType, len(typeTemplate))
	copy(types, typeTemplate)
	return types
}

// TypeOverride 建房时对模板条目的覆盖项（仅 rank/mul/on 可覆盖）
type TypeOverride struct {
	ID   string   `json:"id"`
	Rank *int     `json:"rank,omitempty"`
	Mul  *float64 `json:"mul,omitempty"`
	On   *bool    `json:"on,omitempty"`
}

// sanitizeTypes 用覆盖项合成牌型目录，保证至少一个牌型启用
func sanitizeTypes(overrides []TypeOverride) []HandType {
	byID := make(map[string]TypeOverride, len(overrides))
	for _, o := range overrides {
		byID[o.ID] = o
	}

	types := DefaultTypes()
	for i := range types {
		o, ok := byID[types[i].ID]
		if !ok {
			continue
		}
		if o.Rank != nil {
			types[i].Rank = *o.Rank
		}
		if o.Mul != nil {
			types[i].Mul = nonNegative(*o.Mul, types[i].Mul)
		}
		if o.On != nil {
			types[i].On = *o.On
		}
	}

	anyOn := false
	for _, t := range types {
		if t.On {
			anyOn = true
			break
		}
	}
	if !anyOn {
		types[0].On = true
	}
	return types
}

// rankWeight 点数权重，未知点数为 0
func rankWeight(rankID string) int {
	for i, r := range Ranks {
		if r == rankID {
			return i + 1
		}
	}
	return 0
}

// suitWeight 花色权重，未知花色为 0
func suitWeight(suitID string) int {
	for _, s := range Suits {
		if s.ID == suitID {
			return s.Weight
		}
	}
	return 0
}

// sanitizeRank 点数不在表内时回退到 K
func sanitizeRank(rank string) string {
	for _, r := range Ranks {
		if r == rank {
			return rank
		}
	}
	return "K"
}

// sanitizeSuit 花色不在表内时回退到黑桃
func sanitizeSuit(suit string) string {
	for _, s := range Suits {
		if s.ID == suit {
			return suit
		}
	}
	return "spade"
}

// round2 四舍五入保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// finite 过滤 NaN/Inf，非有限值回退默认
func finite(v, d float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return d
	}
	return v
}

// positive 非正或非有限值回退默认，其余保留两位小数
func positive(v, d float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return d
	}
	return round2(v)
}

// nonNegative 负数或非有限值回退默认，其余保留两位小数
func nonNegative(v, d float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return d
	}
	return round2(v)
}
