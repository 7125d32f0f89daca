package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"receptscrape/pkg/cache"
	"receptscrape/pkg/config"
	"receptscrape/pkg/extract"
	"receptscrape/pkg/media"
	"receptscrape/pkg/recipe"
	"receptscrape/pkg/scrape"
)

func main() {
	urlFlag := flag.String("url", "", "recipe page URL to extract")
	outFlag := flag.String("out", "", "write the recipe JSON to this file instead of stdout")
	thumbFlag := flag.String("thumb", "", "download the thumbnail image and write a 512px JPEG to this file")
	configFlag := flag.String("config", "config.yml", "path to the yaml config file")
	flag.Parse()

	if *urlFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for secrets
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	client := scrape.NewClient(
		scrape.WithUserAgent(cfg.Fetch.UserAgent),
		scrape.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
		scrape.WithMaxBodySize(cfg.Fetch.MaxBodyMB*1024*1024),
	)
	images := extract.NewImageExtractor(
		client,
		cfg.Images.MinWidth,
		cfg.Images.MinHeight,
		cfg.Images.ProbeConcurrency,
		time.Duration(cfg.Images.ProbeTimeoutSeconds)*time.Second,
		cfg.Images.PlaceholderURL,
	)
	parser := extract.NewParser(client, images)

	// Optional Redis cache: repeated extractions of the same URL are served
	// from the cache when REDIS_URL is set.
	var recipeCache *cache.Cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		recipeCache, err = cache.NewRedisCache(redisURL, "receptscrape")
		if err != nil {
			log.Printf("Redis unavailable, continuing without cache: %v", err)
			recipeCache = nil
		} else {
			defer recipeCache.Close()
		}
	}

	ctx := context.Background()

	result := lookupOrParse(ctx, parser, recipeCache, cfg, *urlFlag)

	if *thumbFlag != "" {
		if err := writeThumbnail(ctx, client, result.ThumbnailImage, *thumbFlag); err != nil {
			log.Printf("Failed to write thumbnail: %v", err)
		}
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode recipe: %v", err)
	}

	if *outFlag != "" {
		if err := os.WriteFile(*outFlag, append(output, '\n'), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", *outFlag, err)
		}
		log.Printf("Wrote %s (%s mode)", *outFlag, result.Mode)
	} else {
		fmt.Println(string(output))
	}
}

func lookupOrParse(ctx context.Context, parser *extract.Parser, recipeCache *cache.Cache, cfg *config.Config, url string) *recipe.Recipe {
	if recipeCache != nil {
		if cached, err := recipeCache.GetRecipe(ctx, url); err == nil {
			log.Printf("Cache hit for %s", url)
			return cached
		}
	}

	result, err := parser.ParseURL(ctx, url)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	if recipeCache != nil {
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		if err := recipeCache.SetRecipe(ctx, result, ttl); err != nil {
			log.Printf("Failed to cache recipe: %v", err)
		}
	}
	return result
}

func writeThumbnail(ctx context.Context, client *scrape.Client, imageURL, path string) error {
	data, err := client.FetchBody(ctx, imageURL, 20*1024*1024)
	if err != nil {
		return err
	}
	thumb, err := media.Thumbnail(data, 512)
	if err != nil {
		return err
	}
	return os.WriteFile(path, thumb, 0644)
}
