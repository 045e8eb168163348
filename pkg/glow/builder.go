package glow

// ClearSequence 没有任何发光对象时使用的空序列（零离屏开销）
func ClearSequence() Sequence {
	return Sequence{}
}

// Build 根据发光集合与参数生成命令序列
//
// 纯函数：相同输入得到等价输出，每次返回新的序列。
// 集合为空（或所有成员都没有可绘制对象）时返回 ClearSequence。
//
// 步骤：
//  1. 全分辨率遮罩目标，清空为透明
//  2. 按集合顺序：设置颜色，逐个绘制剪影
//  3. 两个半分辨率目标，遮罩降采样到模糊目标
//  4. 若干次可分离模糊（水平 + 垂直）
//  5. 全分辨率 HDR 中间目标，复制相机输出
//  6. 合成回相机输出
//  7. 按依赖逆序释放全部临时目标
func Build(set *Set, params Parameters) Sequence {
	if set == nil || !hasDrawable(set.entities) {
		return ClearSequence()
	}
	params = params.Normalize()

	seq := make(Sequence, 0, estimateLen(set.entities, params))

	seq = append(seq,
		Command{Kind: CmdAllocTarget, Target: TargetMask, Resolution: ResFull, Format: FormatDefault},
		Command{Kind: CmdSetTarget, Target: TargetMask},
		Command{Kind: CmdClearTarget, Color: Transparent},
	)
	for _, e := range set.entities {
		if len(e.renderables) == 0 {
			continue
		}
		seq = append(seq, Command{Kind: CmdSetColor, Param: PropGlowColor, Color: e.color})
		for _, r := range e.renderables {
			seq = append(seq, Command{Kind: CmdDrawRenderable, Renderable: r, Shader: ShaderSilhouette})
		}
	}

	// 模糊在半分辨率下进行
	seq = append(seq,
		Command{Kind: CmdAllocTarget, Target: TargetBlur, Resolution: ResHalf, Format: FormatDefault},
		Command{Kind: CmdAllocTarget, Target: TargetScratch, Resolution: ResHalf, Format: FormatDefault},
		Command{Kind: CmdBlit, Source: TargetMask, Target: TargetBlur},
		Command{Kind: CmdSetTexelSize, Param: PropBlurSize, Spread: params.BlurSpread, Resolution: ResHalf},
	)
	for i := 0; i < params.BlurIterations; i++ {
		seq = append(seq,
			Command{Kind: CmdBlit, Source: TargetBlur, Target: TargetScratch, Shader: ShaderBlur, Pass: PassHorizontal},
			Command{Kind: CmdBlit, Source: TargetScratch, Target: TargetBlur, Shader: ShaderBlur, Pass: PassVertical},
		)
	}

	// 目标不能同时作为源和目的地，需要中间目标
	seq = append(seq,
		Command{Kind: CmdAllocTarget, Target: TargetHDRTemp, Resolution: ResFull, Format: FormatHDR},
		Command{Kind: CmdBlit, Source: TargetCamera, Target: TargetHDRTemp},
		Command{Kind: CmdBindTexture, Param: PropPrePassTex, Source: TargetMask},
		Command{Kind: CmdBindTexture, Param: PropBlurredTex, Source: TargetBlur},
		Command{Kind: CmdBlit, Source: TargetHDRTemp, Target: TargetCamera, Shader: ShaderComposite, Pass: PassComposite},
	)

	seq = append(seq,
		Command{Kind: CmdReleaseTarget, Target: TargetHDRTemp},
		Command{Kind: CmdReleaseTarget, Target: TargetBlur},
		Command{Kind: CmdReleaseTarget, Target: TargetScratch},
		Command{Kind: CmdReleaseTarget, Target: TargetMask},
	)
	return seq
}

func hasDrawable(entities []*Entity) bool {
	for _, e := range entities {
		if len(e.renderables) > 0 {
			return true
		}
	}
	return false
}

func estimateLen(entities []*Entity, params Parameters) int {
	n := 20 + 2*params.BlurIterations
	for _, e := range entities {
		n += 1 + len(e.renderables)
	}
	return n
}
