package glow

import "errors"

var (
	// ErrDuplicateInstance 相机上已经绑定了一个 Coordinator
	// 策略：拒绝。新的 Coordinator 不会被创建，已有实例保持不变。
	ErrDuplicateInstance = errors.New("glow: coordinator already attached to camera")

	// ErrMissingShaderProgram 无法按逻辑名称解析必需的着色器程序
	// 属于启动期致命错误，效果无法工作
	ErrMissingShaderProgram = errors.New("glow: missing shader program")

	// ErrNotInitialized 实体在没有 Coordinator 的情况下被激活
	ErrNotInitialized = errors.New("glow: coordinator not initialized")
)
