package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySingleCategory(t *testing.T) {
	c := New(nil, "")

	tests := []struct {
		name    string
		title   string
		content string
		want    string
	}{
		{"trading keywords", "本周交易复盘", "股票市场与投资机会", "trading"},
		{"music keywords", "听一首歌曲", "旋律与节拍的关系", "music"},
		{"tax keywords", "税务筹划", "合规纳税的几个要点", "tax"},
		{"politics keywords", "時評", "时政与社会治理的观点", "politics"},
		{"no match falls back to default", "今天天气", "晴转多云", "wisdom"},
		{"empty input", "", "", "wisdom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.title, tt.content))
		})
	}
}

func TestClassifyHighestScoreWins(t *testing.T) {
	c := New(nil, "")

	// two music keywords vs one wisdom keyword
	got := c.Classify("音乐与人生", "乐器的选择")
	assert.Equal(t, "music", got)
}

func TestClassifyTieBreaksByDeclarationOrder(t *testing.T) {
	c := New([]Category{
		{ID: "first", Keywords: []string{"alpha"}},
		{ID: "second", Keywords: []string{"beta"}},
	}, "fallback")

	// one keyword each: the first declared category wins
	assert.Equal(t, "first", c.Classify("alpha", "beta"))
	// order of keywords in the input is irrelevant
	assert.Equal(t, "first", c.Classify("beta", "alpha"))
}

func TestClassifyDeterministic(t *testing.T) {
	c := New(nil, "")

	first := c.Classify("智慧人生", "思考与感悟")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify("智慧人生", "思考与感悟"))
	}
	assert.Equal(t, "wisdom", first)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := New([]Category{
		{ID: "tech", Keywords: []string{"GoLang"}},
	}, "other")

	assert.Equal(t, "tech", c.Classify("golang tips", ""))
	assert.Equal(t, "tech", c.Classify("GOLANG TIPS", ""))
}
