package lookup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	domain "github.com/example/zzchat/domain/chat"
	"github.com/example/zzchat/modules/chat"
)

const bilibiliAPI = "https://api.yujn.cn/api/blbl.php"

// BilibiliCard is the payload of a bilibili_card message.
type BilibiliCard struct {
	Src   string `json:"src"`
	Title string `json:"title"`
	Cover string `json:"cover"`
	Desc  string `json:"desc"`
}

// BilibiliAdapter resolves a bilibili page link into a direct video URL.
type BilibiliAdapter struct {
	fetcher *Fetcher
	apiURL  string
}

func NewBilibiliAdapter(fetcher *Fetcher) *BilibiliAdapter {
	return &BilibiliAdapter{fetcher: fetcher, apiURL: bilibiliAPI}
}

func (a *BilibiliAdapter) Lookup(ctx context.Context, content string) (*domain.Card, error) {
	_, link := chat.ScanTriggers(content)
	if link == "" {
		return nil, errors.New("请提供B站视频链接，例如：📺b站视频 https://www.bilibili.com/video/BV...")
	}

	query := fmt.Sprintf("%s?url=%s", a.apiURL, url.QueryEscape(link))
	res, err := a.fetcher.GetJSON(ctx, query)
	if err != nil {
		log.Printf("[lookup] bilibili request failed: %v", err)
		return nil, errors.New("B站视频解析服务暂时不可用。")
	}

	if res.Get("code").Int() != 1 {
		msg := strOr(res, "解析失败", "msg")
		return nil, fmt.Errorf("B站视频解析失败: %s", msg)
	}

	videoURL := res.Get("data.0.video_url").String()
	if videoURL == "" {
		return nil, errors.New("解析成功但未获取到视频地址。")
	}

	return &domain.Card{
		Type: domain.TypeBilibiliCard,
		Content: BilibiliCard{
			Src:   videoURL,
			Title: strOr(res, "未知视频", "title"),
			Cover: res.Get("imgurl").String(),
			Desc:  res.Get("desc").String(),
		},
	}, nil
}
