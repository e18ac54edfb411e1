package vkgraph

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/gputypes"
)

// DescriptorType is the kind of resource a descriptor binding refers to.
type DescriptorType uint8

const (
	DescriptorUndefined DescriptorType = iota
	DescriptorCombinedImageSampler
	DescriptorUniformBuffer
)

func (t DescriptorType) String() string {
	switch t {
	case DescriptorCombinedImageSampler:
		return "CombinedImageSampler"
	case DescriptorUniformBuffer:
		return "UniformBuffer"
	}
	return "Undefined"
}

// DescriptorBinding is a single binding of a descriptor set layout.
type DescriptorBinding struct {
	Binding uint32
	Type    DescriptorType
	Count   uint32
	Stages  gputypes.ShaderStages
}

// LayoutEntries expands the binding into bind group layout entries. A
// combined image sampler becomes a texture entry at Binding followed by a
// filtering sampler entry at Binding+1.
func (b DescriptorBinding) LayoutEntries() []gputypes.BindGroupLayoutEntry {
	switch b.Type {
	case DescriptorCombinedImageSampler:
		return []gputypes.BindGroupLayoutEntry{
			{
				Binding:    b.Binding,
				Visibility: b.Stages,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    b.Binding + 1,
				Visibility: b.Stages,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		}
	case DescriptorUniformBuffer:
		return []gputypes.BindGroupLayoutEntry{{
			Binding:    b.Binding,
			Visibility: b.Stages,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		}}
	}
	return nil
}

// DescriptorPoolSize is the number of descriptors of Type a pool must hold.
type DescriptorPoolSize struct {
	Type  DescriptorType
	Count uint32
}

// ShaderModule is a compiled shader stage.
type ShaderModule struct {
	Stage      gputypes.ShaderStage
	EntryPoint string
	Source     gputypes.ShaderSourceSPIRV
}

const spirvMagic = 0x07230203

var errBadSPIRV = errors.New("not a SPIR-V module")

// ReadShader reads the SPIR-V module at path for stage. The module may be
// stored in either byte order.
func ReadShader(stage gputypes.ShaderStage, entryPoint, path string) (*ShaderModule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	code, err := decodeSPIRV(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &ShaderModule{
		Stage:      stage,
		EntryPoint: entryPoint,
		Source:     gputypes.ShaderSourceSPIRV{Code: code},
	}, nil
}

func decodeSPIRV(b []byte) ([]uint32, error) {
	if len(b) < 20 || len(b)%4 != 0 {
		return nil, errBadSPIRV
	}
	var order binary.ByteOrder
	switch {
	case binary.LittleEndian.Uint32(b) == spirvMagic:
		order = binary.LittleEndian
	case binary.BigEndian.Uint32(b) == spirvMagic:
		order = binary.BigEndian
	default:
		return nil, errBadSPIRV
	}
	code := make([]uint32, len(b)/4)
	for i := range code {
		code[i] = order.Uint32(b[4*i:])
	}
	return code, nil
}

// PipelineGroup holds the graphics pipeline configuration used to draw its subgraph.
type PipelineGroup struct {
	Group
	Shaders             []*ShaderModule
	MaxSets             uint32
	DescriptorPoolSizes []DescriptorPoolSize
	DescriptorBindings  []DescriptorBinding
	PushConstantRanges  []gputypes.PushConstantRange
	VertexBuffers       []gputypes.VertexBufferLayout
	Primitive           gputypes.PrimitiveState
	Multisample         gputypes.MultisampleState
	ColorTargets        []gputypes.ColorTargetState
	DepthStencil        *gputypes.DepthStencilState
}

// BindGroupLayout returns the layout entries of all descriptor bindings.
func (gp *PipelineGroup) BindGroupLayout() []gputypes.BindGroupLayoutEntry {
	var entries []gputypes.BindGroupLayoutEntry
	for _, b := range gp.DescriptorBindings {
		entries = append(entries, b.LayoutEntries()...)
	}
	return entries
}

// Shader returns the module for stage, or nil.
func (gp *PipelineGroup) Shader(stage gputypes.ShaderStage) *ShaderModule {
	for _, s := range gp.Shaders {
		if s.Stage == stage {
			return s
		}
	}
	return nil
}
