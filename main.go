package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"strconv"
	"sync"

	"github.com/edaniels/golog"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/o0olele/collision-go/collision"
	"github.com/o0olele/collision-go/geometry"
)

var logger = golog.NewDevelopmentLogger("collision-server")

// The detector is single-threaded; the mutex serializes all handler
// access to the one global instance.
var (
	detectorMu sync.Mutex
	detector   *collision.Detector
)

// MeshPayload is an indexed triangle mesh in JSON form.
type MeshPayload struct {
	Vertices []r3.Vector `json:"vertices"`
	Faces    [][3]int    `json:"faces"`
}

// InitRequest replaces the whole scene.
type InitRequest struct {
	Meshes          []MeshPayload `json:"meshes"`
	CacheBoxes      *bool         `json:"cache_boxes,omitempty"`
	TranslationOnly bool          `json:"translation_only,omitempty"`
}

// RotationPayload is an axis-angle rotation, angle in radians.
type RotationPayload struct {
	Axis  r3.Vector `json:"axis"`
	Angle float64   `json:"angle"`
}

// TransformRequest places one body and optionally runs a query under
// the new placement.
type TransformRequest struct {
	ID          int              `json:"id"`
	Translation *r3.Vector       `json:"translation,omitempty"`
	Rotation    *RotationPayload `json:"rotation,omitempty"`
	// Matrix is a row-major 4x4 homogeneous matrix. When present it
	// overrides the translation and rotation fields.
	Matrix *[16]float64 `json:"matrix,omitempty"`
	// Query selects the composed query: "", "intersections" or "inclusions".
	Query string `json:"query,omitempty"`
}

func buildMesh(payload MeshPayload) (*geometry.TriMesh, error) {
	return geometry.NewTriMesh(payload.Vertices, payload.Faces)
}

func buildTransform(req TransformRequest) geometry.Affine {
	if req.Matrix != nil {
		var m mgl64.Mat4
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				m.Set(row, col, req.Matrix[row*4+col])
			}
		}
		return geometry.NewAffine(m)
	}
	transform := geometry.Identity()
	if req.Rotation != nil {
		transform = geometry.NewRotation(req.Rotation.Angle, req.Rotation.Axis)
	}
	if req.Translation != nil {
		transform = geometry.NewTranslation(*req.Translation).Compose(transform)
	}
	return transform
}

func initHandler(w http.ResponseWriter, r *http.Request) {
	var req InitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	meshes := make([]*geometry.TriMesh, 0, len(req.Meshes))
	for i, payload := range req.Meshes {
		mesh, err := buildMesh(payload)
		if err != nil {
			logger.Warnw("rejected mesh", "index", i, "error", err)
			http.Error(w, "Invalid mesh data", http.StatusBadRequest)
			return
		}
		meshes = append(meshes, mesh)
	}

	var opts []collision.Option
	if req.CacheBoxes != nil {
		opts = append(opts, collision.WithBoxCache(*req.CacheBoxes))
	}
	if req.TranslationOnly {
		opts = append(opts, collision.WithTranslationOnly())
	}

	detectorMu.Lock()
	detector = collision.NewDetector(meshes, opts...)
	count := detector.Len()
	detectorMu.Unlock()

	logger.Infof("detector initialized with %d meshes", count)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "initialized", "count": count})
}

func addMeshHandler(w http.ResponseWriter, r *http.Request) {
	var payload MeshPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	mesh, err := buildMesh(payload)
	if err != nil {
		http.Error(w, "Invalid mesh data", http.StatusBadRequest)
		return
	}

	detectorMu.Lock()
	defer detectorMu.Unlock()
	if detector == nil {
		http.Error(w, "Detector not initialized", http.StatusBadRequest)
		return
	}
	id := detector.AddMesh(mesh)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "added",
		"id":     id,
		"closed": detector.IsClosed(id),
	})
}

func removeMeshHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	detectorMu.Lock()
	defer detectorMu.Unlock()
	if detector == nil || id < 0 || id >= detector.Len() {
		http.Error(w, "Unknown mesh id", http.StatusBadRequest)
		return
	}
	detector.RemoveMesh(id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "removed", "count": detector.Len()})
}

func transformHandler(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	detectorMu.Lock()
	defer detectorMu.Unlock()
	if detector == nil || req.ID < 0 || req.ID >= detector.Len() {
		http.Error(w, "Unknown mesh id", http.StatusBadRequest)
		return
	}

	transform := buildTransform(req)
	resp := map[string]interface{}{"status": "transformed", "id": req.ID}
	switch req.Query {
	case "":
		detector.SetTransform(req.ID, transform)
	case "intersections":
		resp["intersections"] = detector.SetTransformAndIntersections(req.ID, transform)
	case "inclusions":
		resp["inclusions"] = detector.SetTransformAndIntersectionsAndInclusions(req.ID, transform)
	default:
		http.Error(w, "Unknown query kind", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func intersectionsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	detectorMu.Lock()
	defer detectorMu.Unlock()
	if detector == nil || id < 0 || id >= detector.Len() {
		http.Error(w, "Unknown mesh id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":            id,
		"intersections": detector.Intersections(id),
	})
}

func inclusionsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	detectorMu.Lock()
	defer detectorMu.Unlock()
	if detector == nil || id < 0 || id >= detector.Len() {
		http.Error(w, "Unknown mesh id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":         id,
		"inclusions": detector.IntersectionsAndInclusions(id),
	})
}

func statusHandler(w http.ResponseWriter, r *http.Request) {
	detectorMu.Lock()
	defer detectorMu.Unlock()

	resp := map[string]interface{}{"initialized": detector != nil}
	if detector != nil {
		closed := make([]bool, detector.Len())
		for i := range closed {
			closed[i] = detector.IsClosed(i)
		}
		resp["count"] = detector.Len()
		resp["closed"] = closed
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	r := mux.NewRouter()

	// API 路由
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/init", initHandler).Methods("POST")
	api.HandleFunc("/mesh", addMeshHandler).Methods("POST")
	api.HandleFunc("/mesh/{id}", removeMeshHandler).Methods("DELETE")
	api.HandleFunc("/transform", transformHandler).Methods("POST")
	api.HandleFunc("/intersections/{id}", intersectionsHandler).Methods("GET")
	api.HandleFunc("/inclusions/{id}", inclusionsHandler).Methods("GET")
	api.HandleFunc("/status", statusHandler).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	handler := c.Handler(r)

	logger.Infof("server starting on %s", *addr)
	logger.Fatal(http.ListenAndServe(*addr, handler))
}
