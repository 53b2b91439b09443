package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/myphoto-inc/myphoto/internal/application/user"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/auth"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/cache"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/config"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/imageproc"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/ratelimit"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/token"
	"github.com/myphoto-inc/myphoto/internal/interfaces/http/middleware"
	"github.com/myphoto-inc/myphoto/internal/shared/db"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/services/markdown"
)

// Dependencies are the process-level resources the HTTP layer is built on.
// Redis is optional; without it challenges live in memory and login
// endpoints are not rate limited.
type Dependencies struct {
	DB     *gorm.DB
	Config *config.Config
	Logger logger.Interface
	Blobs  gallery.BlobStore
	Redis  *redis.Client
}

// Container wires infrastructure, repositories, use cases and handlers.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client
	blobs  gallery.BlobStore

	// Infrastructure services
	txManager      *db.TransactionManager
	hasher         *auth.BcryptPasswordHasher
	webAuthn       *auth.WebAuthnService
	challengeStore cache.ChallengeStore
	pipeline       *imageproc.Pipeline
	markdown       markdown.MarkdownService
	loginLimiter   ratelimit.RateLimiter

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	sessionManager *user.SessionManager
	userService    *user.ServiceDDD
	accessGate     *middleware.AccessGate
}

func NewContainer(deps Dependencies) (*Container, error) {
	if deps.DB == nil || deps.Config == nil || deps.Blobs == nil {
		return nil, fmt.Errorf("database, config and blob store are required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewLogger()
	}

	c := &Container{
		engine: gin.New(),
		db:     deps.DB,
		cfg:    deps.Config,
		log:    log,
		redis:  deps.Redis,
		blobs:  deps.Blobs,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.repos = newRepositories(c.db, c.log)
	c.initServices()
	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	webAuthn, err := auth.NewWebAuthnService(c.cfg.WebAuthn)
	if err != nil {
		return fmt.Errorf("failed to initialize WebAuthn: %w", err)
	}
	c.webAuthn = webAuthn

	c.txManager = db.NewTransactionManager(c.db)
	c.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	c.challengeStore = cache.NewChallengeStore(c.redis, c.cfg.WebAuthn.ChallengeTTL())
	c.pipeline = imageproc.NewPipeline(c.blobs, c.cfg.Image, c.log.Named("imageproc"))
	c.markdown = markdown.NewMarkdownService()

	if c.redis != nil {
		c.loginLimiter = ratelimit.NewRedisRateLimiter(c.redis, ratelimit.Config{
			Limit:  c.cfg.RateLimit.Requests,
			Window: c.cfg.RateLimit.Window(),
		})
	} else {
		c.log.Infow("redis not configured, using in-memory passkey challenges and no login rate limit")
	}
	return nil
}

func (c *Container) initServices() {
	c.sessionManager = user.NewSessionManager(
		c.repos.sessionRepo,
		c.repos.userRepo,
		token.NewTokenGenerator(),
		c.cfg.Auth.Session.TTL(),
		c.log.Named("session"),
	)

	c.userService = user.NewServiceDDD(
		user.AccountRepositories{
			Users:      c.repos.userRepo,
			Sessions:   c.repos.sessionRepo,
			Passkeys:   c.repos.passkeyRepo,
			Categories: c.repos.categoryRepo,
			Photos:     c.repos.photoRepo,
		},
		c.sessionManager,
		c.hasher,
		c.blobs,
		c.txManager,
		c.log.Named("account"),
	)

	c.accessGate = middleware.NewAccessGate(c.sessionManager, c.cfg.Auth.Cookie, c.log.Named("gate"))
}
