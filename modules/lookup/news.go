package lookup

import (
	"context"
	"errors"
	"fmt"
	"log"

	domain "github.com/example/zzchat/domain/chat"
)

const newsAPI = "https://api.yujn.cn/api/new.php"

// maxNewsItems caps how many headlines a single card carries.
const maxNewsItems = 5

// NewsAdapter fetches the latest headlines.
type NewsAdapter struct {
	fetcher *Fetcher
	apiURL  string
}

func NewNewsAdapter(fetcher *Fetcher) *NewsAdapter {
	return &NewsAdapter{fetcher: fetcher, apiURL: newsAPI}
}

func (a *NewsAdapter) Lookup(ctx context.Context, _ string) (*domain.Card, error) {
	res, err := a.fetcher.GetJSON(ctx, a.apiURL)
	if err != nil {
		log.Printf("[lookup] news request failed: %v", err)
		return nil, errors.New("新闻服务暂时不可用。")
	}

	if res.Get("code").Int() != 200 {
		msg := strOr(res, "未知错误", "msg")
		return nil, fmt.Errorf("新闻获取失败: %s", msg)
	}

	raw := res.Get("data").Array()
	if len(raw) > maxNewsItems {
		raw = raw[:maxNewsItems]
	}
	items := make([]any, 0, len(raw))
	for _, item := range raw {
		items = append(items, item.Value())
	}

	return &domain.Card{
		Type:    domain.TypeNewsCard,
		Content: items,
	}, nil
}
