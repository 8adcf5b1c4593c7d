package classify

import "strings"

// DefaultCategoryID is returned when no keyword matches at all.
const DefaultCategoryID = "wisdom"

// Category is one taxonomy entry. The slice order of a taxonomy is
// significant: ties are broken by the first declared category.
type Category struct {
	ID       string
	Keywords []string
}

// DefaultTaxonomy returns the built-in eight-category keyword mapping.
func DefaultTaxonomy() []Category {
	return []Category{
		{ID: "literary", Keywords: []string{"文艺", "诗词", "文学", "书法", "艺术", "文化", "古典", "雅致"}},
		{ID: "numerology", Keywords: []string{"数术", "易经", "风水", "占卜", "预测", "玄学", "命理", "八卦"}},
		{ID: "wisdom", Keywords: []string{"智慧", "哲学", "思考", "感悟", "人生", "修养", "境界", "觉悟"}},
		{ID: "trading", Keywords: []string{"交易", "投资", "股票", "金融", "市场", "经济", "财富", "投机"}},
		{ID: "consulting", Keywords: []string{"咨询", "建议", "方案", "策略", "规划", "顾问", "指导", "解决"}},
		{ID: "tax", Keywords: []string{"税务", "税收", "财税", "税筹", "合规", "税法", "避税", "纳税"}},
		{ID: "music", Keywords: []string{"音乐", "歌曲", "音律", "乐器", "演奏", "声音", "旋律", "节拍"}},
		{ID: "politics", Keywords: []string{"論正", "时政", "政治", "评论", "观点", "社会", "公共", "治理"}},
	}
}

// Classifier scores text against a fixed keyword taxonomy. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	taxonomy  []Category
	defaultID string
}

// New creates a classifier. A nil or empty taxonomy falls back to the
// built-in one.
func New(taxonomy []Category, defaultID string) *Classifier {
	if len(taxonomy) == 0 {
		taxonomy = DefaultTaxonomy()
	}
	if defaultID == "" {
		defaultID = DefaultCategoryID
	}
	return &Classifier{taxonomy: taxonomy, defaultID: defaultID}
}

// Classify returns the category whose keywords occur most often as
// substrings of the lower-cased title+content. Highest score wins;
// ties go to the first declared category. Zero matches yield the
// default category.
func (c *Classifier) Classify(title, content string) string {
	text := strings.ToLower(title + " " + content)

	bestID := c.defaultID
	bestScore := 0
	for _, category := range c.taxonomy {
		score := 0
		for _, keyword := range category.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > bestScore {
			bestID = category.ID
			bestScore = score
		}
	}

	return bestID
}
