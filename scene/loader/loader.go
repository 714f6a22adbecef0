// Package loader parses a Wavefront OBJ+MTL pair into a scene.Scene,
// resolving materials and textures and routing emissive triangles into
// area lights along the way (spec section 4.7).
package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/udhos/gwob"

	"github.com/lumentrace/raytracer/geom"
	"github.com/lumentrace/raytracer/light"
	loglib "github.com/lumentrace/raytracer/log"
	"github.com/lumentrace/raytracer/material"
	"github.com/lumentrace/raytracer/scene"
)

var logger = loglib.New("scene/loader")

// TextureLoaderFunc resolves a texture referenced by an OBJ/MTL pair. dir is
// the directory the OBJ/MTL files were read from; name is the map's
// filename as written in the MTL file.
type TextureLoaderFunc func(dir, name string) (*material.Texture, error)

// Options configures a Load call.
type Options struct {
	// BaseDir is passed verbatim to TextureLoaderFunc; it carries no
	// meaning to the loader itself beyond that.
	BaseDir string

	// WorkerCount bounds the fan-out across OBJ groups. Zero means
	// runtime.NumCPU().
	WorkerCount int
}

// defaultMaterial backs groups that carry no usemtl name at all. The
// original engine's negative-material-id convention synthesized a material
// from a per-vertex color attribute instead of falling back to gray, but
// gwob's Obj exposes only position/normal/texture triples through Coord
// (governed by StrideOffsetPosition/Normal/Texture) — there is no
// vertex-color channel to synthesize from, so an unnamed group gets this
// flat default rather than the original's per-vertex tint.
var defaultMaterial = material.Material{
	Diffuse:    geom.XYZ(0.6, 0.6, 0.6),
	TextureIdx: material.NoTexture,
}

type workerResult struct {
	triangles []*geom.Primitive[geom.Triangle]
	lights    []*light.AreaLight
}

// Load parses objReader/mtlReader and returns the populated scene.
func Load(objReader, mtlReader io.Reader, opts Options, textureLoader TextureLoaderFunc, cache *material.TextureCache) (*scene.Scene, error) {
	obj, err := gwob.NewObjFromReader("scene.obj", objReader, &gwob.ObjParserOptions{})
	if err != nil {
		return nil, fmt.Errorf("loader: parse obj: %w", err)
	}

	var mtlLib gwob.MaterialLib
	if mtlReader != nil {
		mtlLib, err = gwob.ReadMaterialLibFromReader(mtlReader, &gwob.ObjParserOptions{})
		if err != nil {
			logger.Warningf("loader: parse mtl: %s (continuing with default materials)", err)
			mtlLib = gwob.MaterialLib{}
		}
	}

	precomputedCount, err := countTriangles(obj)
	if err != nil {
		return nil, err
	}

	sc := scene.New()
	resolved := newMaterialResolver(mtlLib, opts, textureLoader, cache, sc)

	workerCount := opts.WorkerCount
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	results := make([]workerResult, len(obj.Groups))
	groupErrs := make([]error, len(obj.Groups))

	groupCh := make(chan int, len(obj.Groups))
	for i := range obj.Groups {
		groupCh <- i
	}
	close(groupCh)

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for groupIdx := range groupCh {
				res, err := fillGroup(obj, obj.Groups[groupIdx], resolved)
				results[groupIdx] = res
				groupErrs[groupIdx] = err
			}
		}()
	}
	wg.Wait()

	var countEmissive int
	for i, res := range results {
		if groupErrs[i] != nil {
			logger.Warningf("loader: group %q: %s", obj.Groups[i].Name, groupErrs[i])
		}
		sc.Triangles = append(sc.Triangles, res.triangles...)
		for _, l := range res.lights {
			sc.Lights = append(sc.Lights, l)
			countEmissive++
		}
	}

	if len(sc.Triangles)+countEmissive != precomputedCount {
		panic(fmt.Sprintf("loader: triangle count mismatch after load: got %d, want %d", len(sc.Triangles)+countEmissive, precomputedCount))
	}

	return sc, nil
}

// countTriangles validates that every group's index run triangulates
// cleanly and returns the total triangle count, skipping (and warning
// about) any group gwob reports a non-triangle-multiple index count for
// (spec section 6, "faces not a multiple of 3 after triangulation are
// skipped with a warning"). gwob triangulates on parse and flattens every
// group's face indices into Obj.Indices[g.IndexBegin : g.IndexBegin+g.IndexCount].
func countTriangles(obj *gwob.Obj) (int, error) {
	total := 0
	for _, group := range obj.Groups {
		if group.IndexCount%3 != 0 {
			logger.Warningf("loader: group %q: index run of %d is not triangulable, skipping", group.Name, group.IndexCount)
			continue
		}
		total += group.IndexCount / 3
	}
	return total, nil
}

func fillGroup(obj *gwob.Obj, group *gwob.Group, resolved *materialResolver) (workerResult, error) {
	var res workerResult

	if group.IndexCount%3 != 0 {
		return res, nil
	}

	matIdx, mat := resolved.resolve(group.Usemtl)
	hasTexture := mat.TextureIdx != material.NoTexture

	indices := obj.Indices[group.IndexBegin : group.IndexBegin+group.IndexCount]
	for i := 0; i+2 < len(indices); i += 3 {
		a := vertexAt(obj, indices[i])
		b := vertexAt(obj, indices[i+1])
		c := vertexAt(obj, indices[i+2])

		var normals [3]geom.Vec3
		if a.hasNormal && b.hasNormal && c.hasNormal {
			normals = [3]geom.Vec3{a.normal, b.normal, c.normal}
		} else {
			flat := c.pos.Sub(a.pos).Cross(b.pos.Sub(a.pos)).Normalize()
			normals = [3]geom.Vec3{flat, flat, flat}
		}

		var uv [3]geom.Vec2
		if hasTexture && a.hasUV && b.hasUV && c.hasUV {
			uv = [3]geom.Vec2{normalizeUV(a.uv), normalizeUV(b.uv), normalizeUV(c.uv)}
		} else {
			uv = [3]geom.Vec2{geom.NoTexCoord, geom.NoTexCoord, geom.NoTexCoord}
		}

		tri := geom.NewTriangle(a.pos, b.pos, c.pos)
		prim := geom.NewTrianglePrimitive(tri, matIdx, normals, uv)

		if mat.IsEmissive() {
			res.lights = append(res.lights, light.NewAreaLight(prim, &mat))
		} else {
			res.triangles = append(res.triangles, prim)
		}
	}

	return res, nil
}

// normalizeUV wraps a tex-coord into [0, 1), the convention the shading
// driver's texture lookup expects (spec section 4.7, "tex-coords are
// normalized to [0,1) when a texture is present").
func normalizeUV(uv geom.Vec2) geom.Vec2 {
	return geom.XY(wrapUnit(uv[0]), wrapUnit(uv[1]))
}

func wrapUnit(v float32) float32 {
	v -= float32(int(v))
	if v < 0 {
		v++
	}
	return v
}

type vertex struct {
	pos       geom.Vec3
	normal    geom.Vec3
	uv        geom.Vec2
	hasNormal bool
	hasUV     bool
}

// vertexAt reads the vertex at coordIndex out of obj.Coord, mirroring x per
// the load-time sign flip shared with normals (spec section 6, "All
// positions/normals negate x on load"). obj.Coord's layout shrinks when
// normals or tex-coords are absent from the source file, so the per-vertex
// stride and each attribute's offset within it must come from
// StrideSize/StrideOffsetPosition/StrideOffsetNormal/StrideOffsetTexture
// rather than an assumed fixed width.
func vertexAt(obj *gwob.Obj, coordIndex int) vertex {
	base := coordIndex * obj.StrideSize

	v := vertex{
		pos: geom.XYZ(
			obj.Coord[base+obj.StrideOffsetPosition],
			obj.Coord[base+obj.StrideOffsetPosition+1],
			obj.Coord[base+obj.StrideOffsetPosition+2],
		).FlipX(),
	}
	if obj.NormCoordFound {
		v.normal = geom.XYZ(
			obj.Coord[base+obj.StrideOffsetNormal],
			obj.Coord[base+obj.StrideOffsetNormal+1],
			obj.Coord[base+obj.StrideOffsetNormal+2],
		).FlipX()
		v.hasNormal = true
	}
	if obj.TextCoordFound {
		v.uv = geom.XY(
			obj.Coord[base+obj.StrideOffsetTexture],
			obj.Coord[base+obj.StrideOffsetTexture+1],
		)
		v.hasUV = true
	}
	return v
}

// materialResolver maps an MTL material name to a scene palette index,
// loading its texture (if any) through the shared cache and merging into
// the scene under one mutex (spec section 4.7 steps 4-5, section 5).
type materialResolver struct {
	mu             sync.Mutex
	mtlLib         gwob.MaterialLib
	opts           Options
	textureLoader  TextureLoaderFunc
	cache          *material.TextureCache
	scene          *scene.Scene
	resolvedByName map[string]int
}

func newMaterialResolver(mtlLib gwob.MaterialLib, opts Options, textureLoader TextureLoaderFunc, cache *material.TextureCache, sc *scene.Scene) *materialResolver {
	return &materialResolver{
		mtlLib:         mtlLib,
		opts:           opts,
		textureLoader:  textureLoader,
		cache:          cache,
		scene:          sc,
		resolvedByName: make(map[string]int),
	}
}

func (r *materialResolver) resolve(name string) (int, material.Material) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.resolvedByName[name]; ok {
		return idx, r.scene.Materials[idx]
	}

	mat := defaultMaterial
	if gm, ok := r.mtlLib.Lib[name]; ok && gm != nil {
		mat = material.Material{
			Diffuse:       geom.XYZ(gm.Kd[0], gm.Kd[1], gm.Kd[2]),
			Specular:      geom.XYZ(gm.Ks[0], gm.Ks[1], gm.Ks[2]),
			Transmittance: geom.XYZ(1, 1, 1).Mul(1 - gm.D),
			Emission:      geom.XYZ(gm.Ke[0], gm.Ke[1], gm.Ke[2]).Normalize(),
			IOR:           gm.Ni,
			TextureIdx:    material.NoTexture,
		}

		if gm.MapKd != "" && r.textureLoader != nil && r.cache != nil {
			path := filepath.Join(r.opts.BaseDir, gm.MapKd)
			tex, err := r.cache.GetOrLoad(path, func() (*material.Texture, error) {
				return r.textureLoader(r.opts.BaseDir, gm.MapKd)
			})
			if err != nil {
				logger.Warningf("loader: texture %q: %s", path, err)
			} else if tex.IsValid() {
				mat.TextureIdx = r.scene.AddTexture(tex)
			}
		}
	}

	idx := r.scene.AddMaterial(mat)
	r.resolvedByName[name] = idx
	return idx, mat
}
