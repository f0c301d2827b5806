package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/matst80/slask-storefront/pkg/category"
	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/messaging"
	"github.com/matst80/slask-storefront/pkg/sdk"
	"github.com/matst80/slask-storefront/pkg/server"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/matst80/slask-storefront/pkg/tracking"
	"github.com/matst80/slask-storefront/pkg/view"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
)

func loadFacets(path string) []facet.Config {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open facet definitions: %v", err)
	}
	defer f.Close()
	configs, err := facet.LoadDefinitions(f)
	if err != nil {
		log.Fatalf("invalid facet definitions in %s: %v", path, err)
	}
	log.Printf("loaded %d facets", len(configs))
	return configs
}

func loadAttributes(path string) []view.AttributeLabel {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("no product attributes configured: %v", err)
		return nil
	}
	defer f.Close()
	attributes := []view.AttributeLabel{}
	if err := jsoncompat.NewDecoder(f).Decode(&attributes); err != nil {
		log.Printf("failed to decode product attributes: %v", err)
		return nil
	}
	return attributes
}

type app struct {
	client *sdk.Client
	ws     *server.WebServer
}

func (a *app) refreshCategories(ctx context.Context) error {
	categories, err := a.client.Categories(ctx)
	if err != nil {
		return err
	}
	a.ws.SetCategories(category.NewTree(categories))
	log.Printf("loaded %d categories", len(categories))
	return nil
}

func (a *app) listenForCategoryChanges(conn *amqp.Connection, country string) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err := messaging.DefineTopic(ch, country, messaging.CategoriesChanged); err != nil {
		return err
	}
	return messaging.ListenToTopic(ch, country, messaging.CategoriesChanged, func(d amqp.Delivery) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return a.refreshCategories(ctx)
	})
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	clientConfig, err := sdk.ConfigFromEnv()
	if err != nil {
		log.Fatalf("platform client: %v", err)
	}
	client := sdk.NewClient(ctx, clientConfig)

	var searcher sdk.Searcher = client
	var hooks []common.ShutdownHook
	if cfg.RedisAddr != "" {
		store := sdk.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := store.Ping(ctx); err != nil {
			log.Printf("redis unavailable, searching uncached: %v", err)
		} else {
			searcher = sdk.NewCachedSearcher(client, store, cfg.CacheTTL, cfg.Country+":")
			hooks = append(hooks, func(context.Context) error { return store.Close() })
		}
	}

	ws := &server.WebServer{
		Searcher:   searcher,
		Products:   client,
		Facets:     loadFacets(cfg.FacetsFile),
		Locales:    storefront.NewLocaleResolver(cfg.Country, cfg.Currency, cfg.Locales...),
		Attributes: loadAttributes(cfg.AttributesFile),
	}
	a := &app{client: client, ws: ws}
	if err := a.refreshCategories(ctx); err != nil {
		log.Printf("failed to load categories: %v", err)
	}

	ticker := time.NewTicker(cfg.RefreshEvery)
	go func() {
		for range ticker.C {
			if err := a.refreshCategories(ctx); err != nil {
				log.Printf("failed to refresh categories: %v", err)
			}
		}
	}()
	hooks = append(hooks, func(context.Context) error {
		ticker.Stop()
		return nil
	})

	if cfg.RabbitUrl != "" {
		tracker, err := tracking.NewRabbitTracking(cfg.RabbitUrl, cfg.Country)
		if err != nil {
			log.Printf("failed to connect to rabbitmq for tracking: %v", err)
		} else {
			ws.Tracking = tracker
			hooks = append(hooks, func(context.Context) error { return tracker.Close() })
		}
		conn, err := amqp.Dial(cfg.RabbitUrl)
		if err != nil {
			log.Printf("failed to connect to rabbitmq for category changes: %v", err)
		} else if err := a.listenForCategoryChanges(conn, cfg.Country); err != nil {
			log.Printf("failed to listen for category changes: %v", err)
			conn.Close()
		} else {
			hooks = append(hooks, func(context.Context) error { return conn.Close() })
		}
	}

	mux := ws.Handler()
	mux.Handle("/metrics", promhttp.Handler())

	timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts)
	srv := common.NewServer(cfg.ListenAddress, mux, timeouts)
	common.RunServerWithShutdown(srv, "storefront", timeouts, hooks...)
}
