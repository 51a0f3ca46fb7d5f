package handler

import (
	"context"
	"time"

	"ebd/internal/auth"
	"ebd/internal/ebd"
)

// In-memory fakes backing the handler tests; behavior mirrors the Postgres
// repositories, including uniqueness and restrict-on-delete rules.

type fakeUsers struct {
	nextID    int64
	users     map[string]auth.User
	passwords map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]auth.User), passwords: make(map[string]string)}
}

func (f *fakeUsers) Register(_ context.Context, username, password string) (auth.User, error) {
	if _, ok := f.users[username]; ok {
		return auth.User{}, auth.ErrUsernameTaken
	}
	f.nextID++
	usr := auth.User{ID: f.nextID, Username: username, CreatedAt: time.Now().UTC()}
	f.users[username] = usr
	f.passwords[username] = password
	return usr, nil
}

func (f *fakeUsers) Verify(_ context.Context, username, password string) (auth.User, error) {
	usr, ok := f.users[username]
	if !ok || f.passwords[username] != password {
		return auth.User{}, auth.ErrInvalidCredentials
	}
	return usr, nil
}

type fakeRepo struct {
	nextID      int64
	classes     []ebd.Classe
	alunos      []ebd.Aluno
	frequencias []ebd.Frequencia
}

func newFakeRepo() *fakeRepo { return &fakeRepo{} }

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) hasClasse(id int64) bool {
	for _, c := range f.classes {
		if c.ID == id {
			return true
		}
	}
	return false
}

// -------- classes --------

func (f *fakeRepo) ListClasses(context.Context) ([]ebd.Classe, error) {
	return append([]ebd.Classe(nil), f.classes...), nil
}

func (f *fakeRepo) CreateClasse(_ context.Context, nome, professor string) (ebd.Classe, error) {
	for _, c := range f.classes {
		if c.Nome == nome {
			return ebd.Classe{}, ebd.ErrNomeTaken
		}
	}
	c := ebd.Classe{ID: f.id(), Nome: nome, Professor: professor}
	f.classes = append(f.classes, c)
	return c, nil
}

func (f *fakeRepo) UpdateClasse(_ context.Context, id int64, up ebd.ClasseUpdate) (ebd.Classe, error) {
	for i, c := range f.classes {
		if c.ID != id {
			continue
		}
		if up.Nome != nil {
			c.Nome = *up.Nome
		}
		if up.Professor != nil {
			c.Professor = *up.Professor
		}
		f.classes[i] = c
		return c, nil
	}
	return ebd.Classe{}, ebd.ErrNotFound
}

func (f *fakeRepo) DeleteClasse(_ context.Context, id int64) error {
	for _, a := range f.alunos {
		if a.ClasseID == id {
			return ebd.ErrClasseRef
		}
	}
	for _, fr := range f.frequencias {
		if fr.ClasseID == id {
			return ebd.ErrClasseRef
		}
	}
	for i, c := range f.classes {
		if c.ID == id {
			f.classes = append(f.classes[:i], f.classes[i+1:]...)
			return nil
		}
	}
	return ebd.ErrNotFound
}

// -------- alunos --------

func (f *fakeRepo) ListAlunos(context.Context) ([]ebd.Aluno, error) {
	return append([]ebd.Aluno(nil), f.alunos...), nil
}

func (f *fakeRepo) CreateAluno(_ context.Context, nome string, nascimento ebd.Date, classeID int64) (ebd.Aluno, error) {
	if !f.hasClasse(classeID) {
		return ebd.Aluno{}, ebd.ErrClasseRef
	}
	a := ebd.Aluno{ID: f.id(), Nome: nome, DataNascimento: nascimento, Status: ebd.StatusMatriculado, ClasseID: classeID}
	f.alunos = append(f.alunos, a)
	return a, nil
}

func (f *fakeRepo) UpdateAluno(_ context.Context, id int64, up ebd.AlunoUpdate) (ebd.Aluno, error) {
	for i, a := range f.alunos {
		if a.ID != id {
			continue
		}
		if up.Nome != nil {
			a.Nome = *up.Nome
		}
		if up.DataNascimento != nil {
			a.DataNascimento = *up.DataNascimento
		}
		if up.Status != nil {
			a.Status = *up.Status
		}
		if up.ClasseID != nil {
			if !f.hasClasse(*up.ClasseID) {
				return ebd.Aluno{}, ebd.ErrClasseRef
			}
			a.ClasseID = *up.ClasseID
		}
		f.alunos[i] = a
		return a, nil
	}
	return ebd.Aluno{}, ebd.ErrNotFound
}

func (f *fakeRepo) DeleteAluno(_ context.Context, id int64) error {
	for i, a := range f.alunos {
		if a.ID == id {
			f.alunos = append(f.alunos[:i], f.alunos[i+1:]...)
			return nil
		}
	}
	return ebd.ErrNotFound
}

func (f *fakeRepo) Aniversariantes(_ context.Context, month, day int) ([]ebd.Aluno, error) {
	var out []ebd.Aluno
	for _, a := range f.alunos {
		if int(a.DataNascimento.Month()) == month && a.DataNascimento.Day() == day {
			out = append(out, a)
		}
	}
	return out, nil
}

// -------- frequencias --------

func (f *fakeRepo) ListFrequencias(context.Context) ([]ebd.Frequencia, error) {
	return append([]ebd.Frequencia(nil), f.frequencias...), nil
}

func (f *fakeRepo) FrequenciasBetween(_ context.Context, start, end ebd.Date) ([]ebd.Frequencia, error) {
	return ebd.FilterByDateRange(f.frequencias, start, end), nil
}

func (f *fakeRepo) FrequenciasByMonth(_ context.Context, month, year int) ([]ebd.Frequencia, error) {
	return ebd.FilterByMonthYear(f.frequencias, time.Month(month), year), nil
}

func (f *fakeRepo) CreateFrequencia(_ context.Context, fr ebd.Frequencia) (ebd.Frequencia, error) {
	if !f.hasClasse(fr.ClasseID) {
		return ebd.Frequencia{}, ebd.ErrClasseRef
	}
	fr.ID = f.id()
	f.frequencias = append(f.frequencias, fr)
	return fr, nil
}

func (f *fakeRepo) UpdateFrequencia(_ context.Context, id int64, up ebd.FrequenciaUpdate) (ebd.Frequencia, error) {
	for i, fr := range f.frequencias {
		if fr.ID != id {
			continue
		}
		if up.ClasseID != nil {
			fr.ClasseID = *up.ClasseID
		}
		if up.Data != nil {
			fr.Data = *up.Data
		}
		if up.TotalBiblia != nil {
			fr.TotalBiblia = *up.TotalBiblia
		}
		if up.TotalPresent != nil {
			fr.TotalPresent = *up.TotalPresent
		}
		if up.TotalAbsent != nil {
			fr.TotalAbsent = *up.TotalAbsent
		}
		if up.TotalVisitors != nil {
			fr.TotalVisitors = *up.TotalVisitors
		}
		if up.TotalGeneral != nil {
			fr.TotalGeneral = *up.TotalGeneral
		}
		if up.Presencas != nil {
			fr.Presencas = *up.Presencas
		}
		f.frequencias[i] = fr
		return fr, nil
	}
	return ebd.Frequencia{}, ebd.ErrNotFound
}

func (f *fakeRepo) DeleteFrequencia(_ context.Context, id int64) error {
	for i, fr := range f.frequencias {
		if fr.ID == id {
			f.frequencias = append(f.frequencias[:i], f.frequencias[i+1:]...)
			return nil
		}
	}
	return ebd.ErrNotFound
}
