package console

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/farmsight-ag/farmsight/pkg/formflow"
	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/navigation"
)

// formView is the render model for the shared form template.
type formView struct {
	Title     string
	Action    string
	CancelURL string
	Error     string
	Notice    string
	Parent    *parentView
	Fields    []fieldView
}

type parentView struct {
	Name          string
	Label         string
	Options       []formflow.ParentOption
	Selected      int64
	SelectedLabel string
	HasSelected   bool
	Locked        bool
}

type fieldView struct {
	Name      string
	Label     string
	Type      string
	Value     string
	Required  bool
	MaxLength int
}

func inputTypeAttr(t formflow.InputType) string {
	switch t {
	case formflow.InputNumber:
		return "number"
	case formflow.InputDateTime:
		return "datetime-local"
	case formflow.InputTextArea:
		return "textarea"
	default:
		return "text"
	}
}

// buildFormView snapshots a controller for rendering.
func buildFormView(c *formflow.Controller, title, action, cancelURL string) formView {
	kind := c.Kind()
	view := formView{
		Title:     title,
		Action:    action,
		CancelURL: cancelURL,
		Error:     c.ErrorMessage(),
		Notice:    c.Notice(),
	}

	if kind.ParentField != "" {
		selected, has := c.ParentID()
		pv := &parentView{
			Name:        kind.ParentField,
			Label:       parentLabel(kind.ParentField),
			Options:     c.ParentOptions(),
			Selected:    selected,
			HasSelected: has,
			Locked:      c.ParentLocked(),
		}
		if has {
			pv.SelectedLabel = fmt.Sprintf("ID %d", selected)
			for _, opt := range pv.Options {
				if opt.ID == selected {
					pv.SelectedLabel = opt.Label
					break
				}
			}
		}
		view.Parent = pv
	}

	for _, f := range kind.Fields {
		view.Fields = append(view.Fields, fieldView{
			Name:      f.Name,
			Label:     f.Label,
			Type:      inputTypeAttr(f.Type),
			Value:     c.Value(f.Name),
			Required:  f.Required,
			MaxLength: f.MaxLength,
		})
	}
	return view
}

func parentLabel(field string) string {
	switch field {
	case "farm_id":
		return "Farm"
	case "field_id":
		return "Field"
	default:
		return "Parent"
	}
}

// applyRequest feeds the posted form into the controller: raw field values,
// then the parent selection when the selector is live.
func applyRequest(c *formflow.Controller, r *http.Request) {
	kind := c.Kind()
	values := formflow.Values{}
	for _, f := range kind.Fields {
		values[f.Name] = r.PostFormValue(f.Name)
	}
	c.SetValues(values)

	if kind.ParentField != "" && !c.ParentLocked() {
		if raw := r.PostFormValue(kind.ParentField); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				_ = c.SelectParent(id)
			}
		}
	}
}

// --- Farms ---

// farmForm handles GET and POST /farms/new.
func (s *Server) farmForm(w http.ResponseWriter, r *http.Request) {
	c := formflow.NewCreate(s.farmKind, s.logger)

	if r.Method == http.MethodPost {
		applyRequest(c, r)
		var created *models.Farm
		err := c.Submit(r.Context(), func(ctx context.Context, record any) error {
			farm, err := s.gw.CreateFarm(ctx, record.(models.FarmInput))
			if err != nil {
				return err
			}
			created = farm
			return nil
		})
		if err == nil {
			http.Redirect(w, r, "/farms/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
			return
		}
	}

	s.render(w, http.StatusOK, "form.html", buildFormView(c, "New Farm", "/farms/new", "/farms"))
}

// farmEditForm handles GET and POST /farms/{farmID}/edit.
func (s *Server) farmEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "farmID")
	if !ok {
		return
	}
	farm, err := s.gw.GetFarm(r.Context(), id)
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	c, err := formflow.NewEdit(s.farmKind, farm, s.logger)
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	detailURL := "/farms/" + strconv.FormatInt(id, 10)
	if r.Method == http.MethodPost {
		applyRequest(c, r)
		err := c.Submit(r.Context(), func(ctx context.Context, record any) error {
			_, err := s.gw.UpdateFarm(ctx, id, record.(models.FarmInput))
			return err
		})
		if err == nil {
			http.Redirect(w, r, detailURL, http.StatusSeeOther)
			return
		}
	}

	s.render(w, http.StatusOK, "form.html",
		buildFormView(c, "Edit Farm: "+farm.Name, detailURL+"/edit", detailURL))
}

// --- Fields ---

// fieldForm handles field creation entered from any of its paths: the
// farm-scoped route, the generic route carrying a farm_id parameter, or the
// bare generic route where the operator picks the farm.
func (s *Server) fieldForm(w http.ResponseWriter, r *http.Request) {
	c := formflow.NewCreate(s.fieldKind, s.logger)
	if id, ok := navigation.ResolveParentID(r.PathValue("farmID"), r.URL.Query().Get("farm_id")); ok {
		c.PreselectParent(id)
	}
	c.LoadReferenceData(r.Context())

	action := r.URL.RequestURI()
	if r.Method == http.MethodPost {
		applyRequest(c, r)
		var created *models.Field
		err := c.Submit(r.Context(), func(ctx context.Context, record any) error {
			field, err := s.gw.CreateField(ctx, record.(models.FieldInput))
			if err != nil {
				return err
			}
			created = field
			return nil
		})
		if err == nil {
			http.Redirect(w, r, "/fields/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
			return
		}
	}

	s.render(w, http.StatusOK, "form.html", buildFormView(c, "New Field", action, "/farms"))
}

// fieldEditForm handles GET and POST /fields/{fieldID}/edit.
func (s *Server) fieldEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "fieldID")
	if !ok {
		return
	}
	field, err := s.gw.GetField(r.Context(), id)
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	c, err := formflow.NewEdit(s.fieldKind, field, s.logger)
	if err != nil {
		s.renderLoadError(w, err)
		return
	}
	c.LoadReferenceData(r.Context())

	detailURL := "/fields/" + strconv.FormatInt(id, 10)
	if r.Method == http.MethodPost {
		applyRequest(c, r)
		err := c.Submit(r.Context(), func(ctx context.Context, record any) error {
			_, err := s.gw.UpdateField(ctx, id, record.(models.FieldInput))
			return err
		})
		if err == nil {
			http.Redirect(w, r, detailURL, http.StatusSeeOther)
			return
		}
	}

	s.render(w, http.StatusOK, "form.html",
		buildFormView(c, "Edit Field: "+field.Name, detailURL+"/edit", detailURL))
}

// --- Crop cycles ---

// cycleForm handles crop cycle creation entered from any of its paths.
func (s *Server) cycleForm(w http.ResponseWriter, r *http.Request) {
	c := formflow.NewCreate(s.cycleKind, s.logger)
	if id, ok := navigation.ResolveParentID(r.PathValue("fieldID"), r.URL.Query().Get("field_id")); ok {
		c.PreselectParent(id)
	}
	c.LoadReferenceData(r.Context())

	action := r.URL.RequestURI()
	if r.Method == http.MethodPost {
		applyRequest(c, r)
		var created *models.CropCycle
		err := c.Submit(r.Context(), func(ctx context.Context, record any) error {
			cycle, err := s.gw.CreateCropCycle(ctx, record.(models.CropCycleInput))
			if err != nil {
				return err
			}
			created = cycle
			return nil
		})
		if err == nil {
			http.Redirect(w, r, "/crop-cycles/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
			return
		}
	}

	s.render(w, http.StatusOK, "form.html", buildFormView(c, "New Crop Cycle", action, "/farms"))
}

// cycleEditForm handles GET and POST /crop-cycles/{cycleID}/edit.
func (s *Server) cycleEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "cycleID")
	if !ok {
		return
	}
	cycle, err := s.gw.GetCropCycle(r.Context(), id)
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	c, err := formflow.NewEdit(s.cycleKind, cycle, s.logger)
	if err != nil {
		s.renderLoadError(w, err)
		return
	}
	c.LoadReferenceData(r.Context())

	detailURL := "/crop-cycles/" + strconv.FormatInt(id, 10)
	if r.Method == http.MethodPost {
		applyRequest(c, r)
		err := c.Submit(r.Context(), func(ctx context.Context, record any) error {
			_, err := s.gw.UpdateCropCycle(ctx, id, record.(models.CropCycleInput))
			return err
		})
		if err == nil {
			http.Redirect(w, r, detailURL, http.StatusSeeOther)
			return
		}
	}

	s.render(w, http.StatusOK, "form.html",
		buildFormView(c, "Edit Crop Cycle: "+cycle.CropType, detailURL+"/edit", detailURL))
}
