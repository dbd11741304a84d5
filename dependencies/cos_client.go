package dependencies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
)

// COSClientInterface 定义了图片库依赖的对象存储客户端能力。
// - 对象键由调用方（service/image.go）生成，这里只负责字节的上传下达
type COSClientInterface interface {
	// GetClient 返回原始的 COS 客户端，供需要细粒度控制的调用方使用
	GetClient() *cos.Client

	// UploadFile 上传一个对象并返回其公开访问 URL
	UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)

	// DeleteObject 删除一个对象
	DeleteObject(ctx context.Context, objectKey string) error
}

// cosClient 持有两个基础 URL：
// - bucketURL: SDK 签名请求用的标准存储桶域名
// - publicBase: 拼接对外访问 URL 用的域名，配置了 CDN/自定义域名时与前者不同
type cosClient struct {
	client     *cos.Client
	bucketURL  *url.URL
	publicBase *url.URL
	logger     *core.ZapLogger
}

// InitCOS 初始化腾讯云 COS 客户端。
func InitCOS(cfg *appConfig.COSConfig, logger *core.ZapLogger) (COSClientInterface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("COS 配置不能为 nil")
	}
	if cfg.SecretID == "" || cfg.SecretKey == "" || cfg.BucketName == "" || cfg.AppID == "" || cfg.Region == "" {
		logger.Error("COS 配置缺少关键字段",
			zap.String("bucket", cfg.BucketName),
			zap.String("region", cfg.Region),
		)
		return nil, fmt.Errorf("COS 配置不完整: SecretID/SecretKey/BucketName/AppID/Region 均为必填")
	}

	bucketURL, err := url.Parse(fmt.Sprintf("https://%s-%s.cos.%s.myqcloud.com", cfg.BucketName, cfg.AppID, cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("构造 COS 存储桶 URL 失败: %w", err)
	}

	// 未配置 BaseURL 时，公有读桶的对外访问地址就是标准桶域名
	publicBase := bucketURL
	if cfg.BaseURL != "" {
		publicBase, err = url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("解析 COS 公共访问域名 '%s' 失败: %w", cfg.BaseURL, err)
		}
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		},
	})

	logger.Info("COS 客户端初始化成功",
		zap.String("bucket", cfg.BucketName),
		zap.String("region", cfg.Region),
		zap.String("publicBase", publicBase.String()),
	)

	return &cosClient{
		client:     client,
		bucketURL:  bucketURL,
		publicBase: publicBase,
		logger:     logger,
	}, nil
}

func (c *cosClient) GetClient() *cos.Client {
	return c.client
}

// publicURL 把对象键拼到公共访问域名上。
func (c *cosClient) publicURL(objectKey string) string {
	u := *c.publicBase
	basePath := u.Path
	if basePath != "/" && !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	u.Path = basePath + strings.TrimPrefix(objectKey, "/")
	return u.String()
}

// readErrorBody 读取失败响应的正文用于日志与错误信息。
func readErrorBody(resp *cos.Response) string {
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

// UploadFile 上传对象，成功时返回公开访问 URL。
func (c *cosClient) UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	opts := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	}

	resp, err := c.client.Object.Put(ctx, objectKey, reader, opts)
	if err != nil {
		c.logger.Error("COS 上传调用失败", zap.String("objectKey", objectKey), zap.Error(err))
		return "", fmt.Errorf("上传对象 '%s' 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := readErrorBody(resp)
		c.logger.Error("COS 上传返回非 200 状态码",
			zap.String("objectKey", objectKey),
			zap.Int("statusCode", resp.StatusCode),
			zap.String("body", msg),
		)
		return "", fmt.Errorf("上传对象 '%s' 失败, 状态码 %d: %s", objectKey, resp.StatusCode, msg)
	}

	accessURL := c.publicURL(objectKey)
	c.logger.Info("COS 上传成功",
		zap.String("objectKey", objectKey),
		zap.Int64("size", size),
		zap.String("url", accessURL),
	)
	return accessURL, nil
}

// DeleteObject 删除对象，204 与 200 都视为成功。
func (c *cosClient) DeleteObject(ctx context.Context, objectKey string) error {
	resp, err := c.client.Object.Delete(ctx, objectKey)
	if err != nil {
		c.logger.Error("COS 删除调用失败", zap.String("objectKey", objectKey), zap.Error(err))
		return fmt.Errorf("删除对象 '%s' 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		msg := readErrorBody(resp)
		c.logger.Error("COS 删除返回非成功状态码",
			zap.String("objectKey", objectKey),
			zap.Int("statusCode", resp.StatusCode),
			zap.String("body", msg),
		)
		return fmt.Errorf("删除对象 '%s' 失败, 状态码 %d: %s", objectKey, resp.StatusCode, msg)
	}

	c.logger.Info("COS 对象已删除", zap.String("objectKey", objectKey))
	return nil
}
