package dajiala

import (
	"encoding/json"

	"wechat_fetcher/internal/domain"
)

// envelope is the upstream response wrapper shared by every endpoint.
// data is decoded per endpoint; its shape differs between them.
type envelope struct {
	Code        int             `json:"code"`
	Msg         string          `json:"msg"`
	Data        json.RawMessage `json:"data"`
	TotalNum    int             `json:"total_num"`
	TotalPage   int             `json:"total_page"`
	CostMoney   float64         `json:"cost_money"`
	RemainMoney float64         `json:"remain_money"`
}

type listingItem struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	CoverURL      string `json:"cover_url"`
	PostTimeStr   string `json:"post_time_str"`
	SendToFansNum int    `json:"send_to_fans_num"`
	AppMsgID      int64  `json:"appmsgid"`
}

type contentData struct {
	HTML    string `json:"html"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// ListingResult is one decoded page of the post-history endpoint.
type ListingResult struct {
	Items       []domain.RawListingItem
	TotalNum    int
	TotalPage   int
	Cost        float64
	RemainMoney float64
}

// ContentResult is a decoded full-content or detail response. Cost is
// set even when the enclosing call failed at the API level, because the
// upstream bills those calls too.
type ContentResult struct {
	Content string
	Author  string
	Cost    float64
}

// BalanceResult reports the remaining prepaid balance.
type BalanceResult struct {
	RemainMoney float64
	Cost        float64
}

func (i listingItem) toDomain() domain.RawListingItem {
	return domain.RawListingItem{
		Title:         i.Title,
		URL:           i.URL,
		CoverURL:      i.CoverURL,
		PostTimeStr:   i.PostTimeStr,
		SendToFansNum: i.SendToFansNum,
		AppMsgID:      i.AppMsgID,
	}
}
