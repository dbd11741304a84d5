package myErrors

import "errors"

// ErrCacheMiss 表示在缓存层未找到对应的键值
var ErrCacheMiss = errors.New("cache: key not found (miss)")

// ErrUnauthorized 表示操作者的角色或身份不足以执行该操作。
// - 包括: 非作者提交他人草稿、非审核人员裁定、普通用户访问管理接口。
var ErrUnauthorized = errors.New("workflow: actor not permitted to perform this operation")

// ErrInvalidState 表示请求的状态流转在帖子当前状态下不合法。
// - 包括: 对非草稿/已驳回帖子提交审核、对非待审核帖子执行通过/驳回，
//   以及条件更新落库时发现状态已被并发修改（CAS 失败）。
var ErrInvalidState = errors.New("workflow: transition not allowed from current post status")

// ErrRejectReasonRequired 表示驳回帖子时未提供非空的驳回理由（参数校验错误）。
var ErrRejectReasonRequired = errors.New("workflow: rejection reason required")

// ErrInvalidReviewer 表示指派的审核人ID没有对应到一个审核人员角色的账号。
var ErrInvalidReviewer = errors.New("workflow: reviewer id does not reference a reviewer account")

// ErrSlugTaken 表示手动指定的 slug 已被其他帖子占用。
var ErrSlugTaken = errors.New("post: slug already in use")
