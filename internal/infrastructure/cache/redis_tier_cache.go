package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/pkg/config"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var _ billing.TierCache = (*RedisTierCache)(nil)

const defaultKeyPrefix = "acueducto:rates:"

// RedisTierCache caché read-through de tramos vigentes. Cada clase tiene un contador de
// generación; invalidar lo incrementa y las entradas viejas quedan huérfanas hasta su TTL.
// Una falla de Redis nunca bloquea la consulta: se degrada a la fuente de verdad.
type RedisTierCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	log       *logger.Logger
}

// NewRedisTierCache conecta con Redis y verifica la conexión.
func NewRedisTierCache(cfg config.RedisConfig, log *logger.Logger) (*RedisTierCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return NewRedisTierCacheWithClient(client, "", time.Duration(cfg.TTLSeconds)*time.Second, log), nil
}

// NewRedisTierCacheWithClient usa un cliente existente (tests o cliente compartido).
func NewRedisTierCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration, log *logger.Logger) *RedisTierCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisTierCache{client: client, keyPrefix: keyPrefix, ttl: ttl, log: log.Component("tier_cache")}
}

// GetOrLoad devuelve los tramos en caché o los carga con load y los guarda bajo la
// generación leída antes de cargar.
func (c *RedisTierCache) GetOrLoad(ctx context.Context, class entity.CustomerClass, asOf time.Time, load billing.TierLoader) ([]*entity.RateTier, error) {
	gen, err := c.client.Get(ctx, c.genKey(class)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("class", string(class)).Msg("redis no disponible, consultando tarifas sin caché")
		return load(ctx)
	}
	key := c.entryKey(class, gen, asOf)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		tiers, decErr := decodeTiers(raw)
		if decErr == nil {
			return tiers, nil
		}
		c.log.Warn().Err(decErr).Str("key", key).Msg("entrada de caché corrupta")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
	}

	tiers, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if payload, encErr := encodeTiers(tiers); encErr == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Str("key", key).Msg("escritura de caché fallida")
		}
	}
	return tiers, nil
}

// Invalidate incrementa la generación de la clase.
func (c *RedisTierCache) Invalidate(ctx context.Context, class entity.CustomerClass) {
	if err := c.client.Incr(ctx, c.genKey(class)).Err(); err != nil {
		c.log.Error().Err(err).Str("class", string(class)).Msg("no se pudo invalidar la caché de tarifas")
	}
}

// Close cierra el cliente.
func (c *RedisTierCache) Close() error {
	return c.client.Close()
}

func (c *RedisTierCache) genKey(class entity.CustomerClass) string {
	return c.keyPrefix + "gen:" + string(class)
}

func (c *RedisTierCache) entryKey(class entity.CustomerClass, gen int64, asOf time.Time) string {
	return fmt.Sprintf("%s%s:%d:%s", c.keyPrefix, class, gen, asOf.UTC().Format(time.RFC3339Nano))
}

// cachedTier forma serializada de un tramo.
type cachedTier struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	CustomerClass string           `json:"customer_class"`
	TierFrom      decimal.Decimal  `json:"tier_from"`
	TierTo        *decimal.Decimal `json:"tier_to"`
	RatePerUnit   decimal.Decimal  `json:"rate_per_unit"`
	FixedCharge   decimal.Decimal  `json:"fixed_charge"`
	EffectiveFrom time.Time        `json:"effective_from"`
	EffectiveTo   *time.Time       `json:"effective_to"`
	Active        bool             `json:"active"`
	Description   string           `json:"description"`
	CreatedAt     time.Time        `json:"created_at"`
}

func encodeTiers(tiers []*entity.RateTier) ([]byte, error) {
	out := make([]cachedTier, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, cachedTier{
			ID: t.ID, Name: t.Name, CustomerClass: string(t.CustomerClass),
			TierFrom: t.TierFrom, TierTo: t.TierTo, RatePerUnit: t.RatePerUnit, FixedCharge: t.FixedCharge,
			EffectiveFrom: t.EffectiveFrom, EffectiveTo: t.EffectiveTo, Active: t.Active,
			Description: t.Description, CreatedAt: t.CreatedAt,
		})
	}
	return json.Marshal(out)
}

func decodeTiers(raw []byte) ([]*entity.RateTier, error) {
	var in []cachedTier
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make([]*entity.RateTier, 0, len(in))
	for _, t := range in {
		out = append(out, &entity.RateTier{
			ID: t.ID, Name: t.Name, CustomerClass: entity.CustomerClass(t.CustomerClass),
			TierFrom: t.TierFrom, TierTo: t.TierTo, RatePerUnit: t.RatePerUnit, FixedCharge: t.FixedCharge,
			EffectiveFrom: t.EffectiveFrom, EffectiveTo: t.EffectiveTo, Active: t.Active,
			Description: t.Description, CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}
