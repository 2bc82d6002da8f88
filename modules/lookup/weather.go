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

const weatherAPI = "https://v2.xxapi.cn/api/weatherDetails"

// WeatherCard is the payload of a weather_card message.
type WeatherCard struct {
	City        string `json:"city"`
	Date        string `json:"date"`
	Day         string `json:"day"`
	Weather     string `json:"weather"`
	TempRange   string `json:"temp_range"`
	CurrentTemp string `json:"current_temp"`
	Wind        string `json:"wind"`
	Humidity    string `json:"humidity"`
	Description string `json:"description"`
}

// WeatherAdapter queries today's weather for a city named in the message.
type WeatherAdapter struct {
	fetcher *Fetcher
	apiURL  string
	apiKey  string
}

func NewWeatherAdapter(fetcher *Fetcher, apiKey string) *WeatherAdapter {
	return &WeatherAdapter{fetcher: fetcher, apiURL: weatherAPI, apiKey: apiKey}
}

func (a *WeatherAdapter) Lookup(ctx context.Context, content string) (*domain.Card, error) {
	_, city := chat.ScanTriggers(content)
	if city == "" {
		return nil, errors.New("请指定城市，例如：⛅天气[成都] 或 ⛅天气 成都")
	}

	query := fmt.Sprintf("%s?city=%s&key=%s", a.apiURL, url.QueryEscape(city), url.QueryEscape(a.apiKey))
	res, err := a.fetcher.GetJSON(ctx, query)
	if err != nil {
		log.Printf("[lookup] weather request failed: %v", err)
		return nil, errors.New("天气服务暂时不可用")
	}

	if res.Get("code").Int() != 200 {
		msg := strOr(res, "未知错误", "msg")
		return nil, fmt.Errorf("天气查询失败: %s", msg)
	}

	daily := res.Get("data.data").Array()
	if len(daily) == 0 {
		return nil, fmt.Errorf("未找到 %s 的天气信息", city)
	}
	today := daily[0]
	realTime := today.Get("real_time_weather.0")

	low := today.Get("low_temp").String()
	high := today.Get("high_temp").String()

	return &domain.Card{
		Type: domain.TypeWeatherCard,
		Content: WeatherCard{
			City:        strOr(res, city, "data.city"),
			Date:        today.Get("date").String(),
			Day:         today.Get("day").String(),
			Weather:     strOr(today, "未知", "weather_from"),
			TempRange:   fmt.Sprintf("%s°C ~ %s°C", low, high),
			CurrentTemp: strOr(realTime, "N/A", "temperature"),
			Wind:        fmt.Sprintf("%s %s", today.Get("wind_from").String(), today.Get("wind_level_from").String()),
			Humidity:    strOr(realTime, "", "humidity"),
			Description: strOr(realTime, strOr(today, "", "weather_from"), "description"),
		},
	}, nil
}
