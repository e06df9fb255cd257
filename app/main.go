package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/contenthub/internal/attachment"
	"github.com/sushihentaime/contenthub/internal/blogservice"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/contactservice"
	"github.com/sushihentaime/contenthub/internal/mailservice"
	"github.com/sushihentaime/contenthub/internal/newsletterservice"
	"github.com/sushihentaime/contenthub/internal/storage"
	"github.com/sushihentaime/contenthub/internal/storage/memory"
	"github.com/sushihentaime/contenthub/internal/storage/mongodb"
	"github.com/sushihentaime/contenthub/internal/storage/postgres"
	"github.com/sushihentaime/contenthub/internal/testimonialservice"
	"github.com/sushihentaime/contenthub/migrations"
)

type application struct {
	config             *Config
	logger             *slog.Logger
	backend            *storage.Backend
	attachments        *attachment.Store
	blogService        *blogservice.BlogService
	contactService     *contactservice.ContactService
	testimonialService *testimonialservice.TestimonialService
	newsletterService  *newsletterservice.NewsletterService
}

func newApplication(cfg *Config, logger *slog.Logger, backend *storage.Backend, attachments *attachment.Store, sink newsletterservice.NotificationSink) *application {
	return &application{
		config:             cfg,
		logger:             logger,
		backend:            backend,
		attachments:        attachments,
		blogService:        blogservice.NewBlogService(backend.Blogs),
		contactService:     contactservice.NewContactService(backend.Contacts),
		testimonialService: testimonialservice.NewTestimonialService(backend.Testimonials),
		newsletterService:  newsletterservice.NewNewsletterService(backend.Subscribers, backend.Documents, sink),
	}
}

func main() {
	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg)

	backend, err := openBackend(cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer backend.Close()

	sink, closeSink, err := openSink(cfg, logger)
	if err != nil {
		logger.Error("failed to set up the newsletter sink", slog.String("sink", cfg.NewsletterSink), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeSink()

	attachments, err := attachment.NewStore(cfg.UploadDir, logger)
	if err != nil {
		logger.Error("failed to prepare the upload directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := newApplication(cfg, logger, backend, attachments, sink)

	// Start the HTTP server
	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.logLevel()}
	if cfg.production() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func openBackend(cfg *Config, logger *slog.Logger) (*storage.Backend, error) {
	switch cfg.StorageDriver {
	case storage.DriverPostgres:
		uri := cfg.postgresURI()

		m, err := common.MigrateUp(migrations.FS, uri)
		if err != nil {
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		m.Close()

		db, err := common.NewDB(uri, common.DBConfig{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
			MaxIdleTime:  cfg.DBMaxIdleTime,
			ConnTimeout:  cfg.DBConnTimeout,
		})
		if err != nil {
			return nil, err
		}

		logger.Info("connected to postgres", slog.String("host", cfg.DBHost), slog.String("db", cfg.DBName))
		return postgres.New(db), nil

	case storage.DriverMongo:
		db, err := common.NewMongo(cfg.MongoURI, cfg.MongoDB, common.MongoConfig{
			MaxPoolSize: cfg.MongoMaxPoolSize,
			ConnTimeout: cfg.DBConnTimeout,
			OpTimeout:   cfg.MongoOpTimeout,
		})
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		backend, err := mongodb.New(ctx, db)
		if err != nil {
			common.CloseMongo(db)
			return nil, err
		}

		logger.Info("connected to mongodb", slog.String("db", cfg.MongoDB))
		return backend, nil

	default:
		logger.Warn("using the in-memory backend; data is lost on restart")
		return memory.New(), nil
	}
}

func openSink(cfg *Config, logger *slog.Logger) (newsletterservice.NotificationSink, func(), error) {
	if cfg.NewsletterSink != sinkBroker {
		return mailservice.NewLogSink(logger), func() {}, nil
	}

	broker, err := common.NewMessageBroker(common.BrokerURI(cfg.MQHost, cfg.MQPort, cfg.MQUser, cfg.MQPassword))
	if err != nil {
		return nil, nil, err
	}

	// Setup the exchange, queue, and binding key
	if err := common.SetupNewsletterExchange(broker); err != nil {
		broker.Close()
		return nil, nil, err
	}

	return mailservice.NewBrokerSink(broker, cfg.MailSender, logger), func() { broker.Close() }, nil
}
