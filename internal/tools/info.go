package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amadeusai/amadeus/internal/schema"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// InfoDeps carries API keys and defaults for the information lookup tools.
type InfoDeps struct {
	WeatherAPIKey   string
	NewsAPIKey      string
	DefaultLocation string
}

func getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "amadeus-assistant/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Weather fetches current conditions from OpenWeatherMap.
func Weather(ctx context.Context, apiKey, location string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("weather lookups need an OpenWeatherMap API key; set WEATHER_API_KEY")
	}
	if location == "" {
		return "", fmt.Errorf("location is empty")
	}

	var data struct {
		Name    string `json:"name"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}

	endpoint := "https://api.openweathermap.org/data/2.5/weather?q=" + url.QueryEscape(location) +
		"&units=metric&appid=" + url.QueryEscape(apiKey)
	if err := getJSON(ctx, endpoint, &data); err != nil {
		return "", fmt.Errorf("fetch weather for %s: %w", location, err)
	}

	desc := "unknown conditions"
	if len(data.Weather) > 0 {
		desc = data.Weather[0].Description
	}
	return fmt.Sprintf("Weather in %s: %s, %.1f°C (feels like %.1f°C), humidity %d%%, wind %.1f m/s.",
		data.Name, desc, data.Main.Temp, data.Main.FeelsLike, data.Main.Humidity, data.Wind.Speed), nil
}

// News fetches top headlines from NewsAPI.
func News(ctx context.Context, apiKey, topic string, limit int) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("news lookups need a NewsAPI key; set NEWS_API_KEY")
	}
	if limit <= 0 || limit > 10 {
		limit = 5
	}

	endpoint := "https://newsapi.org/v2/top-headlines?pageSize=" + fmt.Sprint(limit) + "&apiKey=" + url.QueryEscape(apiKey)
	if topic != "" {
		endpoint += "&q=" + url.QueryEscape(topic)
	} else {
		endpoint += "&country=us"
	}

	var data struct {
		Articles []struct {
			Title  string `json:"title"`
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := getJSON(ctx, endpoint, &data); err != nil {
		return "", fmt.Errorf("fetch news: %w", err)
	}
	if len(data.Articles) == 0 {
		return "No headlines found right now.", nil
	}

	var b strings.Builder
	b.WriteString("Top headlines:\n")
	for i, a := range data.Articles {
		if i >= limit {
			break
		}
		fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, a.Title, a.Source.Name)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// WikipediaSearch returns the summary of the best-matching Wikipedia article.
func WikipediaSearch(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("search query is empty")
	}

	var data struct {
		Title   string `json:"title"`
		Extract string `json:"extract"`
	}
	endpoint := "https://en.wikipedia.org/api/rest_v1/page/summary/" +
		url.PathEscape(strings.ReplaceAll(strings.TrimSpace(query), " ", "_"))
	if err := getJSON(ctx, endpoint, &data); err != nil {
		return "", fmt.Errorf("no Wikipedia article found for %q", query)
	}
	if data.Extract == "" {
		return fmt.Sprintf("Found the article %q but it has no summary.", data.Title), nil
	}
	return fmt.Sprintf("%s: %s", data.Title, data.Extract), nil
}

var jokes = []string{
	"Why do programmers prefer dark mode? Because light attracts bugs.",
	"There are only 10 kinds of people: those who understand binary and those who don't.",
	"I would tell you a UDP joke, but you might not get it.",
	"Why did the developer go broke? Because they used up all their cache.",
	"A SQL query walks into a bar, goes up to two tables and asks: may I join you?",
	"Why do Java developers wear glasses? Because they don't C#.",
	"I told my computer I needed a break, and now it won't stop sending me KitKat ads.",
	"Debugging: being the detective in a crime movie where you are also the murderer.",
}

// TellJoke returns a random joke.
func TellJoke() string {
	return jokes[rand.Intn(len(jokes))]
}

// InfoTools returns the information lookup tool set.
func InfoTools(deps InfoDeps) []*schema.ToolDefinition {
	return []*schema.ToolDefinition{
		{
			Name:        "get_weather",
			Description: "Gets current weather for a location. Args: location (str)",
			Category:    schema.CategoryInformation,
			Parameters: map[string]schema.ParamSpec{
				"location": {Type: schema.ParamString, Description: "City name, defaults to the configured location"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return Weather(ctx, deps.WeatherAPIKey, argString(args, "location", deps.DefaultLocation))
			},
		},
		{
			Name:        "get_news",
			Description: "Gets top news headlines. Args: topic (str, optional), limit (int, optional)",
			Category:    schema.CategoryInformation,
			Parameters: map[string]schema.ParamSpec{
				"topic": {Type: schema.ParamString, Description: "Topic to search headlines for"},
				"limit": {Type: schema.ParamInteger, Description: "How many headlines, defaults to 5"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return News(ctx, deps.NewsAPIKey, argString(args, "topic", ""), argInt(args, "limit", 0))
			},
		},
		{
			Name:        "wikipedia_search",
			Description: "Looks up a topic on Wikipedia. Args: query (str)",
			Category:    schema.CategoryInformation,
			Parameters: map[string]schema.ParamSpec{
				"query": {Type: schema.ParamString, Required: true, Description: "Topic to look up"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return WikipediaSearch(ctx, argString(args, "query", ""))
			},
		},
		{
			Name:        "tell_joke",
			Description: "Tells a random joke",
			Category:    schema.CategoryCommunication,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				return TellJoke(), nil
			},
		},
	}
}
