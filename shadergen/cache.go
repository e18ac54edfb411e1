package shadergen

import (
	"sync"
	"sync/atomic"

	"github.com/soypat/scenegl"
	"github.com/soypat/scenegl/glbuild"
)

// Uniform names of the sampler bindings stored in cache entries.
const (
	DiffuseMapUniform = "diffuseMap"
	NormalMapUniform  = "normalMap"
)

// Cache maps a [glbuild.FeatureMask] to a state set holding the generated
// program and its sampler uniforms. The first request for a mask builds the
// entry and every later request returns the same entry. Cache is safe for
// concurrent use. Entries must not be modified once returned.
type Cache struct {
	mu         sync.Mutex
	entries    map[glbuild.FeatureMask]*scenegl.StateSet
	programmer *glbuild.Programmer
	builds     atomic.Int64
}

// NewCache returns an empty cache that generates programs with flags.
func NewCache(flags glbuild.Flags) *Cache {
	p := glbuild.NewDefaultProgrammer()
	p.SetFlags(flags)
	return &Cache{
		entries:    make(map[glbuild.FeatureMask]*scenegl.StateSet),
		programmer: p,
	}
}

// GetOrCreate returns the entry for mask, building it on first use.
func (c *Cache) GetOrCreate(mask glbuild.FeatureMask) *scenegl.StateSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ss := c.entries[mask]; ss != nil {
		return ss
	}
	ss := c.createStateSet(mask)
	c.entries[mask] = ss
	return ss
}

// StateSet returns the entry for mask or nil if it has not been built.
func (c *Cache) StateSet(mask glbuild.FeatureMask) *scenegl.StateSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[mask]
}

// SetStateSet stores ss as the entry for mask, replacing any existing entry.
// A nil ss removes the entry so the next [Cache.GetOrCreate] rebuilds it.
func (c *Cache) SetStateSet(mask glbuild.FeatureMask, ss *scenegl.StateSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ss == nil {
		delete(c.entries, mask)
		return
	}
	c.entries[mask] = ss
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Builds returns the number of programs generated by the cache.
func (c *Cache) Builds() int64 { return c.builds.Load() }

// Flags returns the generation flags of the cache.
func (c *Cache) Flags() glbuild.Flags { return c.programmer.Flags() }

// createStateSet must be called with c.mu held.
func (c *Cache) createStateSet(mask glbuild.FeatureMask) *scenegl.StateSet {
	ss := scenegl.NewStateSet()
	prog := newProgram(c.programmer, mask)
	ss.SetAttribute(prog)
	if mask.Has(glbuild.DiffuseMap) {
		ss.AddUniform(scenegl.NewIntUniform(DiffuseMapUniform, glbuild.DiffuseMapUnit))
	}
	if mask.Has(glbuild.NormalMap) {
		ss.AddUniform(scenegl.NewIntUniform(NormalMapUniform, glbuild.NormalMapUnit))
	}
	c.builds.Add(1)
	scenegl.Logger().Info("shadergen: built program", "name", prog.Name, "mask", mask)
	return ss
}

// NewProgram generates the program for mask. Both stages are named after
// [glbuild.ShaderName] so exported files are named after the program.
func NewProgram(mask glbuild.FeatureMask, flags glbuild.Flags) *scenegl.Program {
	p := glbuild.NewDefaultProgrammer()
	p.SetFlags(flags)
	return newProgram(p, mask)
}

func newProgram(p *glbuild.Programmer, mask glbuild.FeatureMask) *scenegl.Program {
	name := glbuild.ShaderName(mask)
	vert, frag := p.Generate(mask)
	prog := scenegl.NewProgram(name)
	prog.AddShader(&scenegl.Shader{Type: glbuild.VertexShader, Name: name, Source: vert})
	prog.AddShader(&scenegl.Shader{Type: glbuild.FragmentShader, Name: name, Source: frag})
	if mask.Has(glbuild.NormalMap) {
		prog.BindAttribLocation("tangent", glbuild.TangentLocation)
	}
	scenegl.Logger().Debug("shadergen: generated sources", "name", name, "vertex", vert, "fragment", frag)
	return prog
}
