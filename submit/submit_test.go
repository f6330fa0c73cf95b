package submit

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"forkful/faults"
	"forkful/models"
)

type fakeAPI struct {
	mu          sync.Mutex
	createCalls int
	updateCalls int
	uploadCalls int
	uploadErr   error
	lastInput   models.RecipeInput
}

func (f *fakeAPI) CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.RecipeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastInput = in
	rec := models.Recipe{ID: "new-1", Title: in.Title, Image: in.Image}
	return &models.RecipeResponse{Message: "created", Recipe: rec}, nil
}

func (f *fakeAPI) UpdateRecipe(ctx context.Context, id string, in models.RecipeInput) (*models.RecipeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastInput = in
	return &models.RecipeResponse{Message: "updated", Recipe: models.Recipe{ID: id, Title: in.Title}}, nil
}

func (f *fakeAPI) UploadImage(ctx context.Context, filename string, src io.Reader) (*models.UploadResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	io.Copy(io.Discard, src)
	return &models.UploadResponse{ImageURL: "/uploads/abc.jpg", PublicID: "abc"}, nil
}

func pngBytes(t *testing.T, w, h int) io.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func validDraft() Draft {
	return Draft{
		Title:       "Pasta",
		CookingTime: 20,
		Ingredients: []models.Ingredient{{Name: "Pasta", Amount: "200", Unit: "g"}},
		Steps:       []models.Step{{StepNumber: 1, Instruction: "Boil"}},
	}
}

func TestSubmitRejectsEmptyIngredientsWithoutNetwork(t *testing.T) {
	api := &fakeAPI{}
	p := New(api)

	d := validDraft()
	d.Ingredients = []models.Ingredient{{Name: "", Amount: ""}, {Name: " ", Amount: " "}}
	d.LocalImage = pngBytes(t, 4, 4)

	_, err := p.Submit(context.Background(), d)
	if !faults.IsValidation(err) {
		t.Fatalf("want validation failure, got %v", err)
	}
	if faults.StageOf(err) != faults.StageValidate {
		t.Errorf("stage = %q, want %q", faults.StageOf(err), faults.StageValidate)
	}
	if api.uploadCalls != 0 || api.createCalls != 0 || api.updateCalls != 0 {
		t.Fatalf("validation failure still hit the network: upload=%d create=%d update=%d",
			api.uploadCalls, api.createCalls, api.updateCalls)
	}
}

func TestSubmitAbortsOnUploadFailure(t *testing.T) {
	api := &fakeAPI{uploadErr: faults.Rejectedf(500, "storage down")}
	p := New(api)

	d := validDraft()
	d.LocalImage = pngBytes(t, 4, 4)

	_, err := p.Submit(context.Background(), d)
	if err == nil {
		t.Fatal("expected upload failure")
	}
	if faults.StageOf(err) != faults.StageUpload {
		t.Fatalf("stage = %q, want %q", faults.StageOf(err), faults.StageUpload)
	}
	if api.createCalls != 0 {
		t.Fatal("create was called after a failed upload")
	}
}

func TestSubmitCreateYieldsIdentity(t *testing.T) {
	api := &fakeAPI{}
	p := New(api)

	out, err := p.Submit(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !out.Created || out.RecipeID != "new-1" {
		t.Fatalf("outcome = %+v, want created with the server id", out)
	}
	if api.lastInput.Cuisine != "Other" || api.lastInput.Diet != "None" || api.lastInput.Difficulty != "Medium" {
		t.Errorf("enum defaults not applied: %+v", api.lastInput)
	}
}

func TestSubmitEditUsesUpdate(t *testing.T) {
	api := &fakeAPI{}
	p := New(api)

	d := validDraft()
	d.RecipeID = "r9"
	d.Actor = models.User{ID: "u1", Username: "alice"}
	d.Owner = models.UserRef{ID: "u1", Username: "alice"}
	out, err := p.Submit(context.Background(), d)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Created || out.RecipeID != "r9" {
		t.Fatalf("outcome = %+v, want edit acknowledgement", out)
	}
	if api.createCalls != 0 || api.updateCalls != 1 {
		t.Fatalf("create=%d update=%d, want 0/1", api.createCalls, api.updateCalls)
	}
}

func TestEditByNonOwnerRejectedLocally(t *testing.T) {
	api := &fakeAPI{}
	p := New(api)

	d := validDraft()
	d.RecipeID = "r9"
	d.Actor = models.User{ID: "u2", Username: "bob"}
	d.Owner = models.UserRef{ID: "u1", Username: "alice"}
	d.LocalImage = pngBytes(t, 4, 4)

	_, err := p.Submit(context.Background(), d)
	if !faults.IsValidation(err) {
		t.Fatalf("want validation failure, got %v", err)
	}
	if faults.StageOf(err) != faults.StageValidate {
		t.Errorf("stage = %q, want %q", faults.StageOf(err), faults.StageValidate)
	}
	if api.uploadCalls != 0 || api.updateCalls != 0 || api.createCalls != 0 {
		t.Fatalf("foreign edit reached the network: upload=%d create=%d update=%d",
			api.uploadCalls, api.createCalls, api.updateCalls)
	}
}

func TestStepsRenumberedContiguously(t *testing.T) {
	api := &fakeAPI{}
	p := New(api)

	d := validDraft()
	d.Steps = []models.Step{
		{StepNumber: 1, Instruction: ""},
		{StepNumber: 2, Instruction: "Boil"},
		{StepNumber: 3, Instruction: "   "},
		{StepNumber: 4, Instruction: "Serve"},
	}
	if _, err := p.Submit(context.Background(), d); err != nil {
		t.Fatalf("submit: %v", err)
	}

	steps := api.lastInput.Steps
	if len(steps) != 2 {
		t.Fatalf("steps = %+v, want blanks dropped", steps)
	}
	for i, s := range steps {
		if s.StepNumber != i+1 {
			t.Errorf("step %d numbered %d", i, s.StepNumber)
		}
	}
	if steps[0].Instruction != "Boil" || steps[1].Instruction != "Serve" {
		t.Errorf("steps reordered: %+v", steps)
	}
}

func TestUploadedReferenceReplacesImage(t *testing.T) {
	api := &fakeAPI{}
	p := New(api)

	d := validDraft()
	d.Image = "/uploads/old.jpg"
	d.LocalImage = pngBytes(t, 4, 4)

	if _, err := p.Submit(context.Background(), d); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if api.uploadCalls != 1 {
		t.Fatalf("uploadCalls = %d, want 1", api.uploadCalls)
	}
	if api.lastInput.Image != "/uploads/abc.jpg" {
		t.Errorf("image = %q, want the freshly uploaded reference", api.lastInput.Image)
	}
}

func TestInvalidDraftFields(t *testing.T) {
	api := &fakeAPI{}
	p := New(api)

	for _, mutate := range []func(*Draft){
		func(d *Draft) { d.Title = "  " },
		func(d *Draft) { d.CookingTime = 0 },
		func(d *Draft) { d.Steps = nil },
		func(d *Draft) { d.Cuisine = "Martian" },
		func(d *Draft) { d.Calories = -5 },
	} {
		d := validDraft()
		mutate(&d)
		if _, err := p.Submit(context.Background(), d); !faults.IsValidation(err) {
			t.Errorf("draft %+v: want validation failure, got %v", d, err)
		}
	}
	if api.createCalls != 0 || api.uploadCalls != 0 {
		t.Fatal("invalid drafts reached the network")
	}
}
