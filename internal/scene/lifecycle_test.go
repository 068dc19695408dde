package scene_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/folio3d/internal/scene"
)

type nullSurface struct{ frames int }

func (s *nullSurface) Size() (int, int)    { return 120, 40 }
func (s *nullSurface) Render(scene.Frame) { s.frames++ }

var _ = Describe("Animator lifecycle", func() {
	var (
		surface  *nullSurface
		animator *scene.Animator
	)

	BeforeEach(func() {
		surface = &nullSurface{}
		var err error
		animator, err = scene.New(surface, scene.WithSeed(2024), scene.WithParticleCount(300))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		animator.Dispose()
	})

	It("starts uninitialized and renders nothing", func() {
		Expect(animator.State()).To(Equal(scene.Uninitialized))
		animator.Advance(1)
		Expect(surface.frames).To(BeZero())
	})

	Context("after Init", func() {
		BeforeEach(func() {
			Expect(animator.Init()).To(Succeed())
		})

		It("renders one frame per advance", func() {
			for i := 0; i < 10; i++ {
				animator.Advance(float64(i) * 0.016)
			}
			Expect(surface.frames).To(Equal(10))
		})

		It("keeps queued commands until the next frame", func() {
			Expect(animator.SetParticleCount(30)).To(Succeed())
			Expect(animator.Field().Count).To(Equal(300))
			animator.Advance(0)
			Expect(animator.Field().Count).To(Equal(30))
		})

		It("moves forward to Reduced on a performance downgrade", func() {
			Expect(animator.ApplyPerformance(scene.PerformanceSignal{ReduceQuality: true})).To(Succeed())
			animator.Advance(0)
			Expect(animator.State()).To(Equal(scene.Reduced))
			Expect(animator.Detail()).To(Equal(scene.Simple))
		})

		It("recolors on a theme change without regenerating", func() {
			field := animator.Field()
			Expect(animator.ApplyTheme(scene.ThemeLight)).To(Succeed())
			frame := animator.Advance(0)
			Expect(animator.Field()).To(BeIdenticalTo(field))
			light, _ := scene.ThemeLight.Colors()
			Expect(frame.Background).To(Equal(light.Background))
			Expect(animator.Palette()).To(Equal(light.Palette))
		})

		It("reaches Disposed from Reduced", func() {
			Expect(animator.SwitchToSimpleShapes()).To(Succeed())
			animator.Advance(0)
			animator.Dispose()
			Expect(animator.State()).To(Equal(scene.Disposed))
			Expect(animator.SetPalette(scene.DefaultPalette())).To(MatchError(scene.ErrDisposed))
		})
	})
})
