package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Xushengqwer/blog_service/repo/mysql"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces       = regexp.MustCompile(`\s+`)
)

// Slugify 把标题转换为 URL 友好的 slug：
// 小写、去掉非单词字符、空白折叠为单个连字符。
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug 在 Slugify 的基础上保证库内唯一：
// 冲突时依次尝试追加 -2, -3, ... 后缀。
// - excludeID 非 0 时忽略指定帖子自身的占用（编辑场景）。
func uniqueSlug(ctx context.Context, postRepo mysql.PostRepository, title string, excludeID uint64) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "post"
	}

	candidate := base
	for i := 2; ; i++ {
		taken, err := postRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
