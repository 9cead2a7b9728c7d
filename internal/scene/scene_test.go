package scene_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sway/internal/limb"
	"github.com/san-kum/sway/internal/scene"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// buildCreature assembles a body with one two-joint leg and a detached
// follow anchor used as an IK target.
func buildCreature() (*world.World, map[world.Handle]*limb.Set) {
	w := world.New()

	body := world.NewNode(vec.New(0, 0))
	body.Type = world.NodeAnchor
	bh := w.AddNode(body)

	j1 := world.NewNode(vec.New(30, 0))
	j1.Type = world.NodeLimb
	h1 := w.AddNode(j1)

	j2 := world.NewNode(vec.New(60, 0))
	j2.Type = world.NodeLimb
	h2 := w.AddNode(j2)

	target := w.AddNode(world.NewNode(vec.New(90, 40)))

	Expect(w.AddConstraint(bh, h1, 30)).Error().NotTo(HaveOccurred())
	Expect(w.AddConstraint(h1, h2, 30)).Error().NotTo(HaveOccurred())

	l := limb.NewLimb([]world.Handle{h1, h2})
	l.TargetNode = target
	l.MaxReach = 75
	l.IsStepping = true
	l.StepProgress = 0.4
	l.StepDest = vec.New(80, 10)

	sets := map[world.Handle]*limb.Set{bh: {Limbs: []limb.Limb{l}}}
	return w, sets
}

var _ = Describe("Scene serialization", func() {
	It("survives a build, encode, decode, spawn round trip", func() {
		w, sets := buildCreature()
		original := scene.Build(w, sets)

		data, err := scene.Encode(original)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := scene.Decode(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(original))

		w2 := world.New()
		sets2 := make(map[world.Handle]*limb.Set)
		handles := scene.Spawn(w2, sets2, decoded)
		Expect(handles).To(HaveLen(len(original.Nodes)))

		rebuilt := scene.Build(w2, sets2)
		Expect(rebuilt).To(Equal(original))
	})

	It("keeps indices stable across arena generation gaps", func() {
		w, sets := buildCreature()

		// Burn a slot so the source arena has a hole the spawned
		// world will not have.
		doomed := w.AddNode(world.NewNode(vec.New(500, 500)))
		Expect(w.RemoveNode(doomed)).To(Succeed())

		snapshot := scene.Build(w, sets)

		w2 := world.New()
		sets2 := make(map[world.Handle]*limb.Set)
		scene.Spawn(w2, sets2, snapshot)

		Expect(scene.Build(w2, sets2)).To(Equal(snapshot))
	})

	It("skips out-of-range references instead of failing", func() {
		bad := scene.SceneData{
			Nodes: []world.Node{world.NewNode(vec.New(0, 0))},
			Constraints: []scene.ConstraintData{
				{NodeA: 0, NodeB: 7, RestLength: 50},
			},
			LimbSets: []scene.LimbSetData{
				{BodyNode: 9},
			},
		}

		w := world.New()
		sets := make(map[world.Handle]*limb.Set)
		handles := scene.Spawn(w, sets, bad)

		Expect(handles).To(HaveLen(1))
		Expect(w.Constraints()).To(BeEmpty())
		Expect(sets).To(BeEmpty())
	})

	It("decodes missing sections as empty", func() {
		decoded, err := scene.Decode([]byte(`{}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Nodes).To(BeEmpty())
		Expect(decoded.Constraints).To(BeEmpty())
		Expect(decoded.LimbSets).To(BeEmpty())
	})

	It("rejects malformed JSON", func() {
		_, err := scene.Decode([]byte(`{"nodes": [`))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Presets", func() {
	It("lists presets in sorted order", func() {
		Expect(scene.PresetNames()).To(Equal([]string{"crawler", "snake", "starfish"}))
	})

	It("rejects unknown names", func() {
		_, err := scene.Preset("kraken")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("spawns into a consistent world",
		func(name string) {
			data, err := scene.Preset(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Nodes).NotTo(BeEmpty())

			w := world.New()
			sets := make(map[world.Handle]*limb.Set)
			handles := scene.Spawn(w, sets, data)

			Expect(w.NodeCount()).To(Equal(len(data.Nodes)))
			Expect(w.Constraints()).To(HaveLen(len(data.Constraints)))

			anchors := 0
			for _, h := range handles {
				n := w.Node(h)
				Expect(n).NotTo(BeNil())
				Expect(n.Radius).To(BeNumerically(">", 0))
				if n.Type == world.NodeAnchor {
					anchors++
				}
			}
			Expect(anchors).To(Equal(1), "each preset drives a single anchor")
		},
		Entry("snake", "snake"),
		Entry("crawler", "crawler"),
		Entry("starfish", "starfish"),
	)
})
