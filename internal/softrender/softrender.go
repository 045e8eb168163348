// Package softrender 在 CPU 上执行发光命令序列
//
// 与 GPU 后端解释同一份 glow.Sequence，目标是 *image.RGBA：
// 剪影用 x/image/vector 光栅化，降采样/放大用 nfnt/resize，
// 可分离模糊用 bild 的卷积。用于无窗口工具与像素级测试。
package softrender

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/decker502/glow/internal/targetpool"
	"github.com/decker502/glow/pkg/glow"
	"github.com/decker502/glow/pkg/utils"
	"github.com/nfnt/resize"
	"golang.org/x/image/vector"
)

// polygonRenderable 能提供屏幕坐标凸多边形的可绘制对象
type polygonRenderable interface {
	Polygon() []utils.Point
}

// Renderer CPU 渲染后端
type Renderer struct {
	material  glow.MaterialProperties
	pool      *targetpool.Pool[*image.RGBA]
	warnedHDR bool
}

// NewRenderer 创建 CPU 渲染后端
// material 提供合成时的实时强度，为 nil 时使用默认强度
func NewRenderer(material glow.MaterialProperties) *Renderer {
	if material == nil {
		material = glow.FixedIntensity(glow.DefaultIntensity)
	}
	return &Renderer{
		material: material,
		pool: targetpool.New(func(w, h int) *image.RGBA {
			return image.NewRGBA(image.Rect(0, 0, w, h))
		}, nil),
	}
}

// SetMaterial 替换合成强度来源
// 渲染器先作为着色器库交给协调器，再把协调器设为材质来源
func (r *Renderer) SetMaterial(material glow.MaterialProperties) {
	if material == nil {
		material = glow.FixedIntensity(glow.DefaultIntensity)
	}
	r.material = material
}

// ResolveShader 实现 glow.ShaderLibrary：三个程序均由 CPU 代码实现
func (r *Renderer) ResolveShader(name glow.ShaderName) error {
	switch name {
	case glow.ShaderSilhouette, glow.ShaderBlur, glow.ShaderComposite:
		return nil
	}
	return fmt.Errorf("softrender: no implementation for %q", name)
}

// PoolStats 返回纹理池状态（借出，空闲，累计分配）
func (r *Renderer) PoolStats() (live, idle, allocated int) {
	return r.pool.Live(), r.pool.Idle(), r.pool.Allocated()
}

// Render 对 camera 执行命令序列（原地修改）
func (r *Renderer) Render(seq glow.Sequence, camera *image.RGBA) error {
	if seq.IsEmpty() {
		return nil
	}
	if err := seq.Validate(); err != nil {
		return fmt.Errorf("invalid command sequence: %w", err)
	}

	b := camera.Bounds()
	st := &state{
		r:       r,
		camera:  camera,
		outW:    b.Dx(),
		outH:    b.Dy(),
		targets: make(map[glow.TargetID]*image.RGBA),
		bound:   make(map[string]*image.RGBA),
	}
	defer func() {
		for _, img := range st.targets {
			_ = r.pool.Release(img)
		}
	}()

	for i, c := range seq {
		if err := st.run(c); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, c.Kind, err)
		}
	}
	return nil
}

type state struct {
	r          *Renderer
	camera     *image.RGBA
	outW, outH int

	targets map[glow.TargetID]*image.RGBA
	bound   map[string]*image.RGBA
	current *image.RGBA
	color   glow.Color
	spread  float64
}

func (st *state) resolve(id glow.TargetID) (*image.RGBA, error) {
	if id == glow.TargetCamera {
		return st.camera, nil
	}
	img, ok := st.targets[id]
	if !ok {
		return nil, fmt.Errorf("target %q not allocated", id)
	}
	return img, nil
}

func (st *state) run(c glow.Command) error {
	switch c.Kind {
	case glow.CmdAllocTarget:
		if c.Format == glow.FormatHDR && !st.r.warnedHDR {
			log.Printf("[SoftRender] HDR target %s rendered as RGBA8", c.Target)
			st.r.warnedHDR = true
		}
		w, h := c.Resolution.Size(st.outW, st.outH)
		st.targets[c.Target] = st.r.pool.Acquire(w, h)

	case glow.CmdReleaseTarget:
		img, err := st.resolve(c.Target)
		if err != nil {
			return err
		}
		delete(st.targets, c.Target)
		if st.current == img {
			st.current = nil
		}
		return st.r.pool.Release(img)

	case glow.CmdSetTarget:
		img, err := st.resolve(c.Target)
		if err != nil {
			return err
		}
		st.current = img

	case glow.CmdClearTarget:
		if st.current == nil {
			return fmt.Errorf("no render target")
		}
		draw.Draw(st.current, st.current.Bounds(), image.NewUniform(c.Color), image.Point{}, draw.Src)

	case glow.CmdSetColor:
		st.color = c.Color

	case glow.CmdSetTexelSize:
		st.spread = c.Spread

	case glow.CmdBindTexture:
		img, err := st.resolve(c.Source)
		if err != nil {
			return err
		}
		st.bound[c.Param] = img

	case glow.CmdDrawRenderable:
		if st.current == nil {
			return fmt.Errorf("no render target")
		}
		if pr, ok := c.Renderable.(polygonRenderable); ok {
			FillPolygon(st.current, pr.Polygon(), st.color)
		}

	case glow.CmdBlit:
		return st.blit(c)
	}
	return nil
}

func (st *state) blit(c glow.Command) error {
	src, err := st.resolve(c.Source)
	if err != nil {
		return err
	}
	dst, err := st.resolve(c.Target)
	if err != nil {
		return err
	}

	switch c.Shader {
	case "":
		copyScaled(dst, src)
	case glow.ShaderBlur:
		blurPass(dst, src, st.spread, c.Pass)
	case glow.ShaderComposite:
		mask, ok := st.bound[glow.PropPrePassTex]
		if !ok {
			return fmt.Errorf("%s not bound", glow.PropPrePassTex)
		}
		blurred, ok := st.bound[glow.PropBlurredTex]
		if !ok {
			return fmt.Errorf("%s not bound", glow.PropBlurredTex)
		}
		intensity, _ := st.r.material.MaterialFloat(glow.ShaderComposite, glow.PropIntensity)
		composite(dst, src, mask, blurred, intensity)
	default:
		return fmt.Errorf("unsupported blit shader %q", c.Shader)
	}
	return nil
}

// FillPolygon 以颜色 c 覆盖绘制多边形
func FillPolygon(dst *image.RGBA, pts []utils.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// copyScaled 将 src 缩放后覆盖写入 dst
func copyScaled(dst, src *image.RGBA) {
	db := dst.Bounds()
	var img image.Image = src
	if src.Bounds().Size() != db.Size() {
		img = resize.Resize(uint(db.Dx()), uint(db.Dy()), src, resize.Bilinear)
	}
	draw.Draw(dst, db, img, img.Bounds().Min, draw.Src)
}

// blurKernel 一维高斯核，半径随扩散距离增长
func blurKernel(spread float64, pass int) *convolution.Kernel {
	if spread <= 0 {
		spread = glow.DefaultBlurSpread
	}
	radius := int(math.Ceil(spread * 2))
	sigma := spread
	size := radius*2 + 1

	var k *convolution.Kernel
	if pass == glow.PassVertical {
		k = convolution.NewKernel(1, size)
	} else {
		k = convolution.NewKernel(size, 1)
	}
	sum := 0.0
	for i := 0; i < size; i++ {
		d := float64(i - radius)
		w := math.Exp(-d * d / (2 * sigma * sigma))
		k.Matrix[i] = w
		sum += w
	}
	for i := range k.Matrix {
		k.Matrix[i] /= sum
	}
	return k
}

// blurPass 单方向模糊
func blurPass(dst, src *image.RGBA, spread float64, pass int) {
	out := convolution.Convolve(src, blurKernel(spread, pass), &convolution.Options{Wrap: false})
	draw.Draw(dst, dst.Bounds(), out, out.Bounds().Min, draw.Src)
}

// composite dst = base + clamp(blurred - mask) * intensity，透明度取 base
// 模糊结果为半分辨率，先放大到 base 尺寸
func composite(dst, base, mask, blurred *image.RGBA, intensity float64) {
	b := base.Bounds()
	up := blurred
	if blurred.Bounds().Size() != b.Size() {
		up = clone.AsRGBA(resize.Resize(uint(b.Dx()), uint(b.Dy()), blurred, resize.Bilinear))
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			bo := base.PixOffset(b.Min.X+x, b.Min.Y+y)
			mo := mask.PixOffset(mask.Rect.Min.X+x, mask.Rect.Min.Y+y)
			uo := up.PixOffset(up.Rect.Min.X+x, up.Rect.Min.Y+y)
			do := dst.PixOffset(dst.Rect.Min.X+x, dst.Rect.Min.Y+y)
			for ch := 0; ch < 3; ch++ {
				outline := float64(up.Pix[uo+ch]) - float64(mask.Pix[mo+ch])
				if outline < 0 {
					outline = 0
				}
				v := float64(base.Pix[bo+ch]) + outline*intensity
				dst.Pix[do+ch] = uint8(utils.Clamp(v, 0, 255))
			}
			dst.Pix[do+3] = base.Pix[bo+3]
		}
	}
}
