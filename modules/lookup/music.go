package lookup

import (
	"context"
	"errors"
	"log"

	domain "github.com/example/zzchat/domain/chat"
)

const musicAPI = "https://api.qqsuu.cn/api/dm-randmusic?sort=热歌榜&format=json"

// MusicCard is the payload of a music_card message.
type MusicCard struct {
	Name   string `json:"name"`
	Singer string `json:"singer"`
	URL    string `json:"url"`
	Cover  string `json:"cover"`
}

// MusicAdapter fetches a random song from the trending chart.
type MusicAdapter struct {
	fetcher *Fetcher
	apiURL  string
}

func NewMusicAdapter(fetcher *Fetcher) *MusicAdapter {
	return &MusicAdapter{fetcher: fetcher, apiURL: musicAPI}
}

func (a *MusicAdapter) Lookup(ctx context.Context, _ string) (*domain.Card, error) {
	res, err := a.fetcher.GetJSON(ctx, a.apiURL)
	if err != nil {
		log.Printf("[lookup] music request failed: %v", err)
		return nil, errors.New("音乐服务暂时不可用。")
	}

	code := res.Get("code").Int()
	if code != 1 && code != 200 {
		return nil, errors.New("音乐接口返回异常。")
	}

	data := res.Get("data")
	audio := data.Get("url").String()
	if audio == "" {
		return nil, errors.New("抱歉，未能获取到音乐资源。")
	}

	return &domain.Card{
		Type: domain.TypeMusicCard,
		Content: MusicCard{
			Name:   strOr(data, "未知歌曲", "name"),
			Singer: strOr(data, "未知歌手", "singer", "artists_name"),
			URL:    audio,
			Cover:  strOr(data, "", "image", "picurl"),
		},
	}, nil
}
