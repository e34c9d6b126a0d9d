package importers

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// ImportAnimation decodes the first skin and its first animation found in a
// .gltf/.glb file into an NBRAnimation. A file with no skins or no
// animations is reported as ErrUnsupportedFeature rather than an empty
// payload, since an animation-less NBRAnimation has no consumer.
func ImportAnimation(path string) (*nbr.Animation, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: gltf open %q: %v", core.ErrBadInputPath, path, err)
	}
	if len(doc.Skins) == 0 {
		return nil, fmt.Errorf("%w: %q has no skin", core.ErrUnsupportedFeature, path)
	}
	if len(doc.Animations) == 0 {
		return nil, fmt.Errorf("%w: %q has no animations", core.ErrUnsupportedFeature, path)
	}

	skin := doc.Skins[0]
	anim := doc.Animations[0]

	jointNodeIndex := make(map[uint32]int, len(skin.Joints))
	for i, nodeIdx := range skin.Joints {
		jointNodeIndex[nodeIdx] = i
	}

	joints := make([]nbr.Joint, len(skin.Joints))
	for i, nodeIdx := range skin.Joints {
		joints[i].ParentIndex = parentJointIndex(doc, nodeIdx, jointNodeIndex)
	}

	if skin.InverseBindMatrices != nil {
		mats, err := modeler.ReadAccessor(doc, doc.Accessors[*skin.InverseBindMatrices], nil)
		if err != nil {
			return nil, fmt.Errorf("inverse bind matrices: %w", err)
		}
		if flat, ok := mats.([][16]float32); ok {
			for i := range joints {
				if i < len(flat) {
					joints[i].InverseBindPose = flat[i]
				}
			}
		}
	}

	for _, ch := range anim.Channels {
		if ch.Target.Node == nil {
			continue
		}
		ji, ok := jointNodeIndex[*ch.Target.Node]
		if !ok {
			continue
		}
		sampler := anim.Samplers[*ch.Sampler]
		times, err := modeler.ReadAccessor(doc, doc.Accessors[sampler.Input], nil)
		if err != nil {
			return nil, fmt.Errorf("sampler input: %w", err)
		}
		timeline, ok := times.([]float32)
		if !ok {
			continue
		}

		switch ch.Target.Path {
		case gltf.TRSTranslation:
			values, err := modeler.ReadAccessor(doc, doc.Accessors[sampler.Output], nil)
			if err != nil {
				return nil, err
			}
			vecs, _ := values.([][3]float32)
			joints[ji].Positions = zipJointSamples3(timeline, vecs)
		case gltf.TRSRotation:
			values, err := modeler.ReadAccessor(doc, doc.Accessors[sampler.Output], nil)
			if err != nil {
				return nil, err
			}
			quats, _ := values.([][4]float32)
			joints[ji].Rotations = zipJointSamples4(timeline, quats)
		case gltf.TRSScale:
			values, err := modeler.ReadAccessor(doc, doc.Accessors[sampler.Output], nil)
			if err != nil {
				return nil, err
			}
			vecs, _ := values.([][3]float32)
			joints[ji].Scales = zipJointSamples3(timeline, vecs)
		}
	}

	duration := float32(0)
	for _, j := range joints {
		duration = maxSampleTime(duration, j.Positions)
		duration = maxSampleTime(duration, j.Rotations)
		duration = maxSampleTime(duration, j.Scales)
	}

	return &nbr.Animation{Joints: joints, Duration: duration, FrameRate: 30}, nil
}

func parentJointIndex(doc *gltf.Document, nodeIdx uint32, jointNodeIndex map[uint32]int) int16 {
	for candidate, node := range doc.Nodes {
		for _, child := range node.Children {
			if child == nodeIdx {
				if pi, ok := jointNodeIndex[uint32(candidate)]; ok {
					return int16(pi)
				}
			}
		}
	}
	return -1
}

func zipJointSamples3(times []float32, values [][3]float32) []nbr.JointSample {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	out := make([]nbr.JointSample, n)
	for i := 0; i < n; i++ {
		out[i] = nbr.JointSample{X: values[i][0], Y: values[i][1], Z: values[i][2], Time: times[i]}
	}
	return out
}

func zipJointSamples4(times []float32, values [][4]float32) []nbr.JointSample {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	out := make([]nbr.JointSample, n)
	for i := 0; i < n; i++ {
		out[i] = nbr.JointSample{X: values[i][0], Y: values[i][1], Z: values[i][2], W: values[i][3], Time: times[i]}
	}
	return out
}

func maxSampleTime(cur float32, samples []nbr.JointSample) float32 {
	if len(samples) == 0 {
		return cur
	}
	last := samples[len(samples)-1].Time
	if last > cur {
		return last
	}
	return cur
}
