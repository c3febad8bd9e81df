package eventbrite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"EventsFinder/internal/adapter"
	"EventsFinder/internal/config"
	"EventsFinder/internal/interfaces"
	"EventsFinder/internal/metrics"
	"EventsFinder/internal/model"
	"EventsFinder/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

const (
	SourceName     = "eventbrite"
	DefaultBaseURL = "https://www.eventbriteapi.com/v3"
	searchPath     = "/events/search/"

	maxBodyBytes = 8 << 20
)

// 查询结果分类，所有分类最终都降级为空结果 + 提示
var (
	ErrMissingCredentials = errors.New("未配置 Eventbrite 凭证")
	ErrAuthRejected       = errors.New("Eventbrite 拒绝凭证")
	ErrNotFound           = errors.New("Eventbrite 未找到活动")
	ErrUpstream           = errors.New("Eventbrite 接口返回错误")
	ErrTransport          = errors.New("Eventbrite 请求失败")
)

// 返回给前端展示的提示
const (
	MessageMissingCredentials = "Eventbrite credentials are not configured, so no events could be fetched."
	MessageAuthRejected       = "Eventbrite rejected the configured credentials. Please check the API key."
	MessageNotFoundAnywhere   = "No events found anywhere for the selected filters."
	MessageLocationFallback   = "No events found near the selected location. Showing events from all locations instead."
	MessageUpstreamError      = "Eventbrite returned an error. Please try again later."
	MessageTransportError     = "Could not reach Eventbrite. Please try again later."
)

func init() {
	adapter.Register(SourceName, NewEventbriteAdapter)
}

// Adapter Eventbrite 查询代理
type Adapter struct {
	cfg        *config.SourceConfig
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
	builder    queryBuilder
}

// NewEventbriteAdapter 工厂函数（注册到 adapter 包）
func NewEventbriteAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.EventSource {
	return NewAdapter(cfg, logger, nil, time.Now)
}

// NewAdapter httpClient 为 nil 时按配置构建；now 用于 range 日期策略
func NewAdapter(cfg *config.SourceConfig, logger *logrus.Logger, httpClient *http.Client, now func() time.Time) *Adapter {
	c := *cfg
	c.ApplyDefaults()
	if httpClient == nil {
		httpClient = httpclient.NewHTTPClient(&c, logger)
	}
	if now == nil {
		now = time.Now
	}
	baseURL := strings.TrimSuffix(c.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Adapter{
		cfg:        &c,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		builder:    newQueryBuilder(&c, now),
	}
}

// Name ========== 实现EventSource接口 ==========
func (a *Adapter) Name() string {
	return SourceName
}

// Credentials 配置中的凭证，调用方可再按请求覆盖 OAuth token
func (a *Adapter) Credentials() model.Credentials {
	return model.Credentials{PrimaryToken: a.cfg.AuthToken, OAuthToken: a.cfg.OAuthToken}
}

// Search 查询活动。任何失败都降级为空结果 + 提示，不会抛出
func (a *Adapter) Search(ctx context.Context, filter model.SearchFilter, creds model.Credentials) (result model.PageResult) {
	started := time.Now()
	filter = filter.Normalize(a.cfg.DefaultPageSize)

	defer func() {
		if p := recover(); p != nil {
			a.logger.WithField("panic", p).Error("Eventbrite查询异常，已降级为空结果")
			result = model.EmptyResult(MessageUpstreamError)
			metrics.SearchOutcome(SourceName, "panic", started)
		}
	}()

	result, err := a.search(ctx, filter, creds)
	if err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{
			"source":  SourceName,
			"outcome": outcomeOf(err),
		}).Warn("Eventbrite查询降级为空结果")
		metrics.SearchOutcome(SourceName, outcomeOf(err), started)
		return model.EmptyResult(MessageFor(err))
	}
	if result.Message != "" {
		metrics.SearchOutcome(SourceName, "location_fallback", started)
	} else {
		metrics.SearchOutcome(SourceName, "ok", started)
	}
	return result
}

func (a *Adapter) search(ctx context.Context, filter model.SearchFilter, creds model.Credentials) (model.PageResult, error) {
	if creds.Empty() {
		return model.PageResult{}, ErrMissingCredentials
	}

	// 1. 主请求（含凭证兜底）
	q := a.builder.build(filter)
	resp, err := a.doWithAuthFallback(ctx, q, creds)
	if err != nil {
		return model.PageResult{}, err
	}

	// 2. 带位置且 404：去掉位置再查一次
	message := ""
	if resp.status == http.StatusNotFound && filter.HasLocation() {
		metrics.Fallback(SourceName, "location")
		a.logger.WithField("query", q.Encode()).Info("Eventbrite按位置未找到活动，去掉位置重试")
		resp, err = a.doWithAuthFallback(ctx, q.Without(locationParams...), creds)
		if err != nil {
			return model.PageResult{}, err
		}
		message = MessageLocationFallback
	}

	if err := statusError(resp.status); err != nil {
		return model.PageResult{}, err
	}

	// 3. 解析并统一结构
	result, err := a.parse(resp.body)
	if err != nil {
		return model.PageResult{}, err
	}
	result.Message = message
	a.logger.WithFields(logrus.Fields{
		"source": SourceName,
		"count":  len(result.Events),
		"page":   result.Pagination.PageNumber,
	}).Debug("Eventbrite查询成功")
	return result, nil
}

type upstreamResponse struct {
	status int
	body   []byte
}

// doWithAuthFallback OAuth token 被拒（401/403）时，改用主 token 作为 query 参数重试一次
func (a *Adapter) doWithAuthFallback(ctx context.Context, q Query, creds model.Credentials) (*upstreamResponse, error) {
	token, fallback := selectToken(creds)
	resp, err := a.do(ctx, q, token, false)
	if err != nil {
		return nil, err
	}
	if isAuthFailure(resp.status) && fallback != "" {
		metrics.Fallback(SourceName, "auth")
		a.logger.WithField("status", resp.status).Info("Eventbrite拒绝OAuth token，改用主token重试")
		return a.do(ctx, q, fallback, true)
	}
	return resp, nil
}

// do 发起单次请求。tokenInQuery 为 true 时 token 放在 query 参数里，不带 Authorization 头
func (a *Adapter) do(ctx context.Context, q Query, token string, tokenInQuery bool) (*upstreamResponse, error) {
	if tokenInQuery {
		q = q.Without(paramToken)
		q.Add(paramToken, token)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.requestURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: 构建请求失败: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if !tokenInQuery {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequest(SourceName, 0)
		// url.Error 里带完整 URL，token 不能进日志
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = a.requestURL(redactToken(q))
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	// 确保响应体关闭，并处理关闭时的错误
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭Eventbrite响应体失败: %v", err)
		}
	}()
	metrics.UpstreamRequest(SourceName, resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: 读取响应失败: %w", ErrTransport, err)
	}
	return &upstreamResponse{status: resp.StatusCode, body: body}, nil
}

func (a *Adapter) requestURL(q Query) string {
	return a.baseURL + searchPath + "?" + q.Encode()
}

// redactToken token 参数值替换为占位符
func redactToken(q Query) Query {
	if !q.Has(paramToken) {
		return q
	}
	out := q.Without(paramToken)
	out.Add(paramToken, "REDACTED")
	return out
}

func (a *Adapter) parse(body []byte) (model.PageResult, error) {
	var raw model.EventbriteSearchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.PageResult{}, fmt.Errorf("%w: 解析响应失败: %w", ErrTransport, err)
	}

	events := make([]model.NormalizedEvent, 0, len(raw.Events))
	for i, item := range raw.Events {
		if len(bytes.TrimSpace(item)) == 0 || bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var e model.EventbriteEvent
		if err := json.Unmarshal(item, &e); err != nil {
			a.logger.WithError(err).WithField("index", i).Warn("Eventbrite活动数据格式错误，跳过")
			continue
		}
		events = append(events, Normalize(e))
	}

	pagination := model.SinglePage(len(events))
	if p := raw.Pagination; p != nil {
		pagination = model.Pagination{
			PageNumber:   p.PageNumber,
			PageSize:     p.PageSize,
			PageCount:    p.PageCount,
			ObjectCount:  p.ObjectCount,
			HasMoreItems: p.HasMoreItems,
		}
	}
	return model.PageResult{Events: events, Pagination: pagination}, nil
}

// selectToken OAuth token 优先；主 token 仅在 OAuth 先被使用时作为兜底
func selectToken(creds model.Credentials) (token, fallback string) {
	if creds.OAuthToken != "" {
		if creds.PrimaryToken != "" && creds.PrimaryToken != creds.OAuthToken {
			fallback = creds.PrimaryToken
		}
		return creds.OAuthToken, fallback
	}
	return creds.PrimaryToken, ""
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func statusError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case isAuthFailure(status):
		return fmt.Errorf("%w: status %d", ErrAuthRejected, status)
	case status == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrUpstream, status)
	}
}

// MessageFor 错误 → 前端提示
func MessageFor(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return MessageMissingCredentials
	case errors.Is(err, ErrAuthRejected):
		return MessageAuthRejected
	case errors.Is(err, ErrNotFound):
		return MessageNotFoundAnywhere
	case errors.Is(err, ErrTransport):
		return MessageTransportError
	default:
		return MessageUpstreamError
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "missing_credentials"
	case errors.Is(err, ErrAuthRejected):
		return "auth_rejected"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	default:
		return "upstream_error"
	}
}
