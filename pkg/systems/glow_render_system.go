package systems

import (
	"fmt"
	"log"

	"github.com/decker502/glow/internal/shaders"
	"github.com/decker502/glow/internal/targetpool"
	"github.com/decker502/glow/pkg/glow"
	"github.com/decker502/glow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// polygonRenderable 能提供屏幕坐标凸多边形的可绘制对象
type polygonRenderable interface {
	Polygon() []utils.Point
}

// GlowRenderSystem 在 GPU 上执行发光命令序列
//
// 每帧在场景绘制完成之后（BeforeImageEffects）调用 Draw，
// 按顺序执行相机上的命令：临时目标来自纹理池，着色器来自 Library，
// 合成强度在执行时从 MaterialProperties 实时读取。
type GlowRenderSystem struct {
	camera   *glow.Camera
	shaders  *shaders.Library
	material glow.MaterialProperties
	pool     *targetpool.Pool[*ebiten.Image]

	// 已校验过的序列（按首元素地址与长度识别），避免每帧重复校验
	validatedPtr *glow.Command
	validatedLen int

	outW, outH int
	warnedHDR  bool
	lastErr    string
}

// NewGlowRenderSystem 创建发光渲染系统
func NewGlowRenderSystem(camera *glow.Camera, lib *shaders.Library, material glow.MaterialProperties) *GlowRenderSystem {
	return &GlowRenderSystem{
		camera:   camera,
		shaders:  lib,
		material: material,
		pool: targetpool.New(func(w, h int) *ebiten.Image {
			return ebiten.NewImage(w, h)
		}, func(img *ebiten.Image) {
			img.Deallocate()
		}),
	}
}

// Draw 对相机图像执行当前命令序列
// 出错时只记录一次日志，不中断渲染
func (s *GlowRenderSystem) Draw(cameraImage *ebiten.Image) {
	seq := s.camera.Commands(glow.BeforeImageEffects)
	if err := s.Execute(seq, cameraImage); err != nil {
		if msg := err.Error(); msg != s.lastErr {
			log.Printf("[GlowRenderSystem] Error: %v", err)
			s.lastErr = msg
		}
		return
	}
	s.lastErr = ""
}

// Execute 执行命令序列
func (s *GlowRenderSystem) Execute(seq glow.Sequence, cameraImage *ebiten.Image) error {
	if seq.IsEmpty() {
		return nil
	}
	if &seq[0] != s.validatedPtr || len(seq) != s.validatedLen {
		if err := seq.Validate(); err != nil {
			return fmt.Errorf("invalid command sequence: %w", err)
		}
		s.validatedPtr, s.validatedLen = &seq[0], len(seq)
	}

	b := cameraImage.Bounds()
	outW, outH := b.Dx(), b.Dy()
	if outW != s.outW || outH != s.outH {
		if n := s.pool.Purge(); n > 0 {
			log.Printf("[GlowRenderSystem] Output resized to %dx%d, purged %d targets", outW, outH, n)
		}
		s.outW, s.outH = outW, outH
	}

	ex := &execution{
		sys:     s,
		camera:  cameraImage,
		outW:    outW,
		outH:    outH,
		targets: make(map[glow.TargetID]*ebiten.Image),
		bound:   make(map[string]*ebiten.Image),
	}
	defer ex.releaseAll()

	for i, c := range seq {
		if err := ex.run(c); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, c.Kind, err)
		}
	}
	return nil
}

// PoolStats 返回纹理池状态（借出，空闲，累计分配）
func (s *GlowRenderSystem) PoolStats() (live, idle, allocated int) {
	return s.pool.Live(), s.pool.Idle(), s.pool.Allocated()
}

// execution 单次执行的状态
type execution struct {
	sys        *GlowRenderSystem
	camera     *ebiten.Image
	outW, outH int

	targets map[glow.TargetID]*ebiten.Image
	bound   map[string]*ebiten.Image
	current *ebiten.Image
	color   glow.Color
	texel   [2]float32
}

func (ex *execution) resolve(id glow.TargetID) (*ebiten.Image, error) {
	if id == glow.TargetCamera {
		return ex.camera, nil
	}
	img, ok := ex.targets[id]
	if !ok {
		return nil, fmt.Errorf("target %q not allocated", id)
	}
	return img, nil
}

func (ex *execution) run(c glow.Command) error {
	switch c.Kind {
	case glow.CmdAllocTarget:
		if c.Format == glow.FormatHDR && !ex.sys.warnedHDR {
			// Ebitengine 只有 RGBA8 目标
			log.Printf("[GlowRenderSystem] HDR target %s falls back to default format", c.Target)
			ex.sys.warnedHDR = true
		}
		w, h := c.Resolution.Size(ex.outW, ex.outH)
		ex.targets[c.Target] = ex.sys.pool.Acquire(w, h)

	case glow.CmdReleaseTarget:
		img, err := ex.resolve(c.Target)
		if err != nil {
			return err
		}
		delete(ex.targets, c.Target)
		if ex.current == img {
			ex.current = nil
		}
		return ex.sys.pool.Release(img)

	case glow.CmdSetTarget:
		img, err := ex.resolve(c.Target)
		if err != nil {
			return err
		}
		ex.current = img

	case glow.CmdClearTarget:
		if ex.current == nil {
			return fmt.Errorf("no render target")
		}
		if c.Color == glow.Transparent {
			ex.current.Clear()
		} else {
			ex.current.Fill(c.Color)
		}

	case glow.CmdSetColor:
		ex.color = c.Color

	case glow.CmdSetTexelSize:
		w, h := c.Resolution.Size(ex.outW, ex.outH)
		ex.texel = [2]float32{float32(c.Spread / float64(w)), float32(c.Spread / float64(h))}

	case glow.CmdBindTexture:
		img, err := ex.resolve(c.Source)
		if err != nil {
			return err
		}
		ex.bound[c.Param] = img

	case glow.CmdDrawRenderable:
		return ex.drawSilhouette(c)

	case glow.CmdBlit:
		return ex.blit(c)
	}
	return nil
}

func (ex *execution) drawSilhouette(c glow.Command) error {
	if ex.current == nil {
		return fmt.Errorf("no render target")
	}
	pr, ok := c.Renderable.(polygonRenderable)
	if !ok {
		// 后端无法解释的句柄不产生剪影
		return nil
	}
	pts := pr.Polygon()
	is := utils.FanIndices(len(pts))
	if is == nil {
		return nil
	}
	shader, err := ex.sys.shaders.Shader(c.Shader)
	if err != nil {
		return err
	}

	vs := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Uniforms = map[string]any{
		"GlowColor": ex.color.Float32s(),
	}
	op.AntiAlias = true
	ex.current.DrawTrianglesShader(vs, is, shader, op)
	return nil
}

func (ex *execution) blit(c glow.Command) error {
	src, err := ex.resolve(c.Source)
	if err != nil {
		return err
	}
	dst, err := ex.resolve(c.Target)
	if err != nil {
		return err
	}

	switch c.Shader {
	case "":
		copyScaled(dst, src)
		return nil

	case glow.ShaderBlur:
		shader, err := ex.sys.shaders.Shader(c.Shader)
		if err != nil {
			return err
		}
		dir := []float32{1, 0}
		if c.Pass == glow.PassVertical {
			dir = []float32{0, 1}
		}
		w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
		op := &ebiten.DrawRectShaderOptions{}
		op.Images[0] = src
		op.Uniforms = map[string]any{
			"BlurSize":  ex.texel[:],
			"Direction": dir,
		}
		op.Blend = ebiten.BlendCopy
		dst.DrawRectShader(w, h, shader, op)
		return nil

	case glow.ShaderComposite:
		return ex.composite(c, src, dst)
	}
	return fmt.Errorf("unsupported blit shader %q", c.Shader)
}

func (ex *execution) composite(c glow.Command, src, dst *ebiten.Image) error {
	shader, err := ex.sys.shaders.Shader(c.Shader)
	if err != nil {
		return err
	}
	mask, ok := ex.bound[glow.PropPrePassTex]
	if !ok {
		return fmt.Errorf("%s not bound", glow.PropPrePassTex)
	}
	blurred, ok := ex.bound[glow.PropBlurredTex]
	if !ok {
		return fmt.Errorf("%s not bound", glow.PropBlurredTex)
	}

	intensity, _ := ex.sys.material.MaterialFloat(glow.ShaderComposite, glow.PropIntensity)

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	// Kage 要求所有源图尺寸相同：半分辨率结果先放大到全分辨率
	up := ex.sys.pool.Acquire(w, h)
	defer ex.sys.pool.Release(up)
	copyScaled(up, blurred)

	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = src
	op.Images[1] = mask
	op.Images[2] = up
	op.Uniforms = map[string]any{
		"Intensity": float32(intensity),
	}
	op.Blend = ebiten.BlendCopy
	dst.DrawRectShader(w, h, shader, op)
	return nil
}

// releaseAll 出错中断时归还仍借出的目标
func (ex *execution) releaseAll() {
	for id, img := range ex.targets {
		_ = ex.sys.pool.Release(img)
		delete(ex.targets, id)
	}
}

// copyScaled 将 src 缩放复制到 dst（覆盖写入）
func copyScaled(dst, src *ebiten.Image) {
	sb, db := src.Bounds(), dst.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	op.Filter = ebiten.FilterLinear
	op.Blend = ebiten.BlendCopy
	dst.DrawImage(src, op)
}
