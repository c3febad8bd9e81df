package httpclient

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"EventsFinder/internal/config"

	"github.com/sirupsen/logrus"
)

const defaultTimeout = 15 * time.Second

// NewHTTPClient 按活动源配置构建客户端：代理、超时、gzip 解压
func NewHTTPClient(cfg *config.SourceConfig, logger *logrus.Logger) *http.Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &gzipTransport{next: newTransport(cfg.Proxy, logger)},
	}
}

// newTransport 关闭标准库自动解压，由 gzipTransport 统一处理
func newTransport(proxy string, logger *logrus.Logger) *http.Transport {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  true,
	}
	if proxy == "" {
		return t
	}
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		logger.WithError(err).WithField("proxy", proxy).Warn("代理地址解析失败，将不使用代理")
		return t
	}
	t.Proxy = http.ProxyURL(proxyURL)
	logger.WithField("proxy", proxyURL.Redacted()).Info("HTTP客户端已配置代理")
	return t
}

type gzipTransport struct {
	next http.RoundTripper
}

func (g *gzipTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := g.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Header.Get("Content-Encoding") != "gzip" {
		return resp, nil
	}

	// gzip 头已被预读，原始响应体不再完整，只能整体失败
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("gzip解压失败: %w", err)
	}
	resp.Body = &gzipBody{zr: zr, raw: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

// gzipBody 关闭时同时释放解压 reader 与原始响应体
type gzipBody struct {
	zr  *gzip.Reader
	raw io.ReadCloser
}

func (b *gzipBody) Read(p []byte) (int, error) {
	return b.zr.Read(p)
}

func (b *gzipBody) Close() error {
	zerr := b.zr.Close()
	if err := b.raw.Close(); err != nil {
		return err
	}
	return zerr
}
