package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/run417/bit-announcement-notifier/app/announcement"
	"github.com/run417/bit-announcement-notifier/app/cfg"
	"github.com/run417/bit-announcement-notifier/app/config"
	"github.com/run417/bit-announcement-notifier/app/database"
	"github.com/run417/bit-announcement-notifier/app/notify"
	"github.com/run417/bit-announcement-notifier/app/scraper"
	"github.com/run417/bit-announcement-notifier/app/subscriber"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting announcement notifier", "version", appCfg.Version, "backfill", appCfg.Backfill)

	agent := notify.NewTextitAgent(appCfg.TextitID, appCfg.TextitPassword, appCfg.TextitURL)
	reporter := notify.NewErrorReporter(agent, appCfg.TextitID)

	ctx := context.Background()
	if err := run(ctx, appCfg, agent); err != nil {
		slog.Error("Run failed", "error", err)
		// Best-effort: surface the failure on the same channel the
		// announcement alerts use.
		reporter.Report(ctx, err.Error())
		os.Exit(1)
	}

	slog.Info("Run complete")
}

func run(ctx context.Context, appCfg *cfg.Cfg, agent notify.Agent) error {
	db, err := database.NewConnection(appCfg.DBHost, appCfg.DBPort, appCfg.DBUser, appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	sources, err := config.NewLoader(appCfg.SourcesDir).LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load source configurations: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no source configurations found in %s", appCfg.SourcesDir)
	}

	repo := database.NewAnnouncementRepository(db)

	for _, source := range sources {
		if !source.Settings.Enabled {
			slog.Info("Source disabled, skipping", "source", source.Name)
			continue
		}

		if appCfg.Backfill {
			err = backfillSource(ctx, appCfg, source, repo)
		} else {
			err = processSource(ctx, appCfg, source, repo, agent)
		}
		if err != nil {
			return fmt.Errorf("source %s: %w", source.Name, err)
		}
	}

	return nil
}

// processSource runs the regular pipeline for one source: scrape the
// listing, reconcile it against the stored rows, then notify and
// persist whatever is new. Notification happens before persistence,
// so a failed save means the same announcements are re-detected and
// re-notified on the next run: delivery is at-least-once.
func processSource(ctx context.Context, appCfg *cfg.Cfg, source *config.SourceConfig,
	repo *database.AnnouncementRepository, agent notify.Agent) error {
	loc, err := source.Source.GetLocation()
	if err != nil {
		return err
	}

	fetcher := scraper.NewFetcher(appCfg.UserAgent)
	pageScraper := scraper.NewScraper(source.Source.Container)
	updater := scraper.NewUpdater(fetcher, pageScraper, loc, source.Settings.GetFetchDelay())

	stored, err := repo.GetRecent(source.Settings.PageSize)
	if err != nil {
		return err
	}

	subscribers, err := subscriber.NewLoader(appCfg.SubscribersFile).LoadAll()
	if err != nil {
		return err
	}

	web, err := scrapeListing(ctx, fetcher, pageScraper, source.Source.URL)
	if err != nil {
		return err
	}

	comparator := announcement.NewComparator(web, stored, updater)
	if err := comparator.Run(ctx); err != nil {
		return err
	}

	if !comparator.HasNew() {
		slog.Info("No new announcements", "source", source.Name)
		return nil
	}

	fresh := comparator.NewAnnouncements()
	slog.Info("New announcements detected", "source", source.Name, "count", fresh.Size())

	if err := updater.RefreshAllTimestamps(ctx, fresh); err != nil {
		return err
	}

	notifier := notify.NewNotifier(fresh, notify.NewTextitFormatter(), subscribers, notify.NewTextitFilter(), agent)
	notifier.Notify(ctx)

	count, err := repo.SaveAll(fresh)
	if err != nil {
		return err
	}
	slog.Info("Stored new announcements", "source", source.Name, "count", count)

	return nil
}

// backfillSource seeds the database from older listing pages without
// comparing or notifying. Used to populate an empty database before
// the first regular run; the comparison step needs a full stored page
// to diff against.
func backfillSource(ctx context.Context, appCfg *cfg.Cfg, source *config.SourceConfig,
	repo *database.AnnouncementRepository) error {
	loc, err := source.Source.GetLocation()
	if err != nil {
		return err
	}

	fetcher := scraper.NewFetcher(appCfg.UserAgent)
	pageScraper := scraper.NewScraper(source.Source.Container)
	updater := scraper.NewUpdater(fetcher, pageScraper, loc, source.Settings.GetFetchDelay())

	for page := 1; page <= appCfg.BackfillPages; page++ {
		url := source.Source.PageAt(page)
		slog.Info("Backfilling listing page", "source", source.Name, "page", page, "url", url)

		collection, err := scrapeListing(ctx, fetcher, pageScraper, url)
		if err != nil {
			return err
		}

		if err := updater.RefreshAllTimestamps(ctx, collection); err != nil {
			return err
		}

		count, err := repo.SaveAll(collection)
		if err != nil {
			return err
		}
		slog.Info("Backfilled listing page", "source", source.Name, "page", page, "stored", count)
	}

	return nil
}

func scrapeListing(ctx context.Context, fetcher *scraper.Fetcher, pageScraper *scraper.Scraper, url string) (*announcement.Collection, error) {
	page, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	records, err := pageScraper.ParseListing(page, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	collection := announcement.NewCollection()
	for _, record := range records {
		collection.Add(announcement.New(record))
	}
	return collection, nil
}
