package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		// \w 只匹配 ASCII，中文标题会被剥掉，纯中文标题由 uniqueSlug 落到 "post" 前缀
		{"  Go 语言实战  ", "go"},
		{"What's New in Go 1.23?", "whats-new-in-go-123"},
		{"a  b\t c", "a-b-c"},
		{"---", ""},
		{"", ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.title), "title=%q", c.title)
	}
}
