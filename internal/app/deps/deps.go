package deps

import (
	"beatwatch/internal/config"
	dl "beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/domain/settings"
	dbreminder "beatwatch/internal/db/reminder"
	dispatchguard "beatwatch/internal/implementations/dispatch_guard"
	"beatwatch/internal/implementations/logging"
	remindersender "beatwatch/internal/implementations/reminder_sender"
	implsettings "beatwatch/internal/implementations/settings"
	"beatwatch/internal/rabbitmq"
	duereminder "beatwatch/internal/rabbitmq/publishers/due_reminder"
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	EventStore  reminder.EventStore
	ActiveQueue *reminder.ActiveQueue

	SettingsRepository settings.Repository
	SettingsCache      *settings.Cache

	DispatchGuard reminder.DispatchGuard
	DuePublisher  reminder.DuePublisher

	InternalSender *remindersender.InternalSender
	EmailSender    *remindersender.EmailSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.EventStore = dbreminder.NewPgxEventStore(deps.DB, deps.Logger)
	deps.ActiveQueue = reminder.NewActiveQueue()

	deps.SettingsRepository = implsettings.NewRedis(deps.Redis, deps.Logger)
	closeSettingsWatch := deps.initSettingsCache()

	deps.DispatchGuard = dispatchguard.NewRedis(deps.Redis, deps.Config.DispatchGuardTTL)
	closeDuePublisher := deps.initRabbitmqDuePublisher()

	deps.InternalSender = remindersender.NewInternal(deps.SseServer)
	deps.EmailSender = remindersender.NewEmail(
		deps.AwsConfig,
		deps.Config.EmailSender,
		deps.Config.EmailRecipient,
	)

	return deps, func() {
		closeFuncs := []func(){
			closeSettingsWatch,
			closeDuePublisher,
			closeSseServer,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqDuePublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	err = rabbitmqChannel.ExchangeDeclare(
		deps.Config.RabbitmqDueExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	_, err = rabbitmqChannel.QueueDeclare(deps.Config.RabbitmqDueQueue, true, false, false, false, nil)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.QueueBind(
		deps.Config.RabbitmqDueQueue,
		deps.Config.RabbitmqDueQueue,
		deps.Config.RabbitmqDueExchange,
		false,
		nil,
	); err != nil {
		deps.Logger.Error(context.Background(), "Could not bind queue to RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}

	deps.DuePublisher = duereminder.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqDueExchange,
		deps.Config.RabbitmqDueQueue,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down due reminder publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Due reminder publisher shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

// initSettingsCache seeds the in-process settings view and keeps it in sync
// with external writers for the lifetime of the process.
func (deps *Deps) initSettingsCache() func() {
	ctx, cancel := context.WithCancel(context.Background())

	initial, err := deps.SettingsRepository.Get(ctx)
	if err != nil {
		// Muted-off is the safe default when the settings key is
		// unreadable at startup.
		deps.Logger.Error(context.Background(), "Could not load settings.", dl.Entry("err", err))
		initial = settings.Settings{}
	}
	deps.SettingsCache = settings.NewCache(initial)

	updates, err := deps.SettingsRepository.Watch(ctx)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not watch settings.", dl.Entry("err", err))
		cancel()
		return func() {}
	}
	go func() {
		for updated := range updates {
			deps.SettingsCache.Replace(updated)
			deps.Logger.Info(context.Background(), "Settings reloaded.", dl.Entry("muted", updated.Muted))
		}
	}()

	return func() {
		deps.Logger.Info(context.Background(), "Stopping settings watch.")
		cancel()
	}
}
