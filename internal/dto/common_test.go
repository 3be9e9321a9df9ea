package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalize(t *testing.T) {
	req := PageRequest{}
	req.Normalize(5)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 5, req.PageSize)

	req = PageRequest{Page: 3, PageSize: 20}
	req.Normalize(5)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 20, req.PageSize)
}

func TestPageRequestOffset(t *testing.T) {
	// 常规偏移
	req := PageRequest{Page: 2, PageSize: 5}
	assert.Equal(t, 5, req.Offset())

	// 客户端报告的已删除数往回拨
	req = PageRequest{Page: 2, PageSize: 5, DeletedDocCount: 1}
	assert.Equal(t, 4, req.Offset())

	// 不允许负偏移
	req = PageRequest{Page: 1, PageSize: 5, DeletedDocCount: 3}
	assert.Equal(t, 0, req.Offset())
}
