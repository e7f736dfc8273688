package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"quotation-backend/config"
	historyprojector "quotation-backend/lib/history-projector"
	pdfattach "quotation-backend/lib/pdf-attach"
	quotationclient "quotation-backend/lib/quotation-client"
	quotationworkflow "quotation-backend/lib/quotation-workflow"
	"quotation-backend/lib/session"
	statuspolicy "quotation-backend/lib/status-policy"
	"quotation-backend/lib/utils/debounce"
	"quotation-backend/models"
	apimodels "quotation-backend/models/api"
	quotationapimodels "quotation-backend/models/api/quotation"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	itemsPageSize  = 20
	searchPageSize = 10
	usage          = `usage: quotectl <command> [flags]

commands:
  show        -id N                              котировка, товары и последний ответ
  history     -id N                              история статусов
  confirm     -id N [-obs TEXT] [-status STATUS] примечание и статус
  respond     -id N -accept|-reject [-comment T] ответ клиента на отправленную котировку
  attach-pdf  -id N -file PATH                   загрузка pdf и перевод в ENVIADA
  search      [-size N]                          поиск по строкам из stdin

common flags: -api URL -token T | -email E -password P -timeout SEC`
)

type commonFlags struct {
	api      string
	token    string
	email    string
	password string
	timeout  int
}

func addCommon(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.StringVar(&cf.api, "api", config.Conf.Client.BaseUrl, "адрес api")
	fs.StringVar(&cf.token, "token", config.Conf.Client.Token, "токен доступа")
	fs.StringVar(&cf.email, "email", "", "почта для входа")
	fs.StringVar(&cf.password, "password", "", "пароль для входа")
	fs.IntVar(&cf.timeout, "timeout", config.Conf.Client.TimeoutSec, "таймаут запроса, сек")
	return cf
}

type cli struct {
	client      *quotationclient.Client
	sess        session.Session
	coordinator *quotationworkflow.Coordinator
	out         io.Writer
}

func (cf *commonFlags) connect(ctx context.Context, out io.Writer) (*cli, error) {
	client := quotationclient.NewClient(cf.api, time.Duration(cf.timeout)*time.Second)
	var sess session.Session
	var err error
	switch {
	case cf.token != "":
		sess, err = session.FromToken(cf.token)
	case cf.email != "":
		resp, loginErr := client.Login(ctx, cf.email, cf.password)
		if loginErr != nil {
			return nil, errors.Wrap(loginErr, "ошибка входа")
		}
		sess = session.FromLogin(resp)
	default:
		err = errors.New("нужен -token или -email/-password")
	}
	if err != nil {
		return nil, err
	}
	return &cli{
		client:      client,
		sess:        sess,
		coordinator: quotationworkflow.NewCoordinator(client, statuspolicy.NewDefault(), quotationworkflow.LogNotifier{Logger: noticeLogger(out)}),
		out:         out,
	}, nil
}

// noticeLogger сообщения координатора печатаются в вывод команды
func noticeLogger(out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(log.InfoLevel)
	return logger
}

type command func(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error

var commands = map[string]command{
	"show":       showCmd,
	"history":    historyCmd,
	"confirm":    confirmCmd,
	"respond":    respondCmd,
	"attach-pdf": attachPdfCmd,
	"search":     searchCmd,
}

func run(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return errors.Errorf("неизвестная команда %q\n%v", args[0], usage)
	}
	return cmd(ctx, args[1:], stdin, out)
}

func showCmd(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	cf := addCommon(fs)
	id := fs.Uint("id", 0, "ID котировки")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("не указан -id")
	}
	c, err := cf.connect(ctx, out)
	if err != nil {
		return err
	}
	rec, err := c.client.GetQuotation(ctx, c.sess, *id)
	if err != nil {
		return err
	}
	printQuotation(out, rec)

	for page := 0; ; page++ {
		items, err := c.client.ItemsPage(ctx, c.sess, *id, page, itemsPageSize)
		if err != nil {
			return err
		}
		for _, item := range items.Content {
			fmt.Fprintf(out, "  - %v x%d\n", item.Nombre, item.Cantidad)
		}
		if page+1 >= items.TotalPages {
			break
		}
	}

	history, err := c.client.History(ctx, c.sess, *id)
	if err != nil {
		return err
	}
	printMilestone(out, history)
	if !c.sess.CanManage() && statuspolicy.CanRespond(rec.Estado) {
		fmt.Fprintln(out, "Можно ответить: quotectl respond -id", rec.ID, "-accept|-reject")
	}
	return nil
}

func historyCmd(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	cf := addCommon(fs)
	id := fs.Uint("id", 0, "ID котировки")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("не указан -id")
	}
	c, err := cf.connect(ctx, out)
	if err != nil {
		return err
	}
	history, err := c.client.History(ctx, c.sess, *id)
	if err != nil {
		return err
	}
	for _, entry := range history {
		fmt.Fprintf(out, "%v  %v -> %v  %v  %v\n",
			entry.FechaCambio.Local().Format("02.01.2006 15:04"),
			entry.EstadoAnterior, entry.EstadoNuevo, entry.UsuarioNombre, entry.Observacion)
	}
	printMilestone(out, history)
	return nil
}

func confirmCmd(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("confirm", flag.ContinueOnError)
	cf := addCommon(fs)
	id := fs.Uint("id", 0, "ID котировки")
	obs := fs.String("obs", "", "примечание")
	status := fs.String("status", "", "новый статус")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("не указан -id")
	}
	var target models.QuotationStatus
	if strings.TrimSpace(*status) != "" {
		parsed, ok := models.ParseQuotationStatus(*status)
		if !ok {
			return errors.Errorf("неизвестный статус %q", *status)
		}
		target = parsed
	}
	c, err := cf.connect(ctx, out)
	if err != nil {
		return err
	}
	rec, err := c.client.GetQuotation(ctx, c.sess, *id)
	if err != nil {
		return err
	}
	outcome, err := c.coordinator.Confirm(ctx, c.sess, rec, *obs, target)
	if outcome.Refetch() {
		if fresh, fetchErr := c.client.GetQuotation(ctx, c.sess, *id); fetchErr == nil {
			printQuotation(out, fresh)
		}
	}
	return err
}

func respondCmd(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("respond", flag.ContinueOnError)
	cf := addCommon(fs)
	id := fs.Uint("id", 0, "ID котировки")
	accept := fs.Bool("accept", false, "принять")
	reject := fs.Bool("reject", false, "отклонить")
	comment := fs.String("comment", "", "комментарий")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("не указан -id")
	}
	if *accept == *reject {
		return errors.New("укажите -accept или -reject")
	}
	c, err := cf.connect(ctx, out)
	if err != nil {
		return err
	}
	rec, err := c.client.GetQuotation(ctx, c.sess, *id)
	if err != nil {
		return err
	}
	if !statuspolicy.CanRespond(rec.Estado) {
		return errors.Errorf("%v (статус %v)", quotationworkflow.MsgRespondNotAllowed, rec.Estado.ToHuman())
	}
	outcome, err := c.coordinator.Respond(ctx, c.sess, rec, *accept, *comment)
	if err != nil {
		return err
	}
	history, err := c.client.History(ctx, c.sess, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Статус: %v\n", outcome.Status.ToHuman())
	printMilestone(out, history)
	return nil
}

func attachPdfCmd(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("attach-pdf", flag.ContinueOnError)
	cf := addCommon(fs)
	id := fs.Uint("id", 0, "ID котировки")
	path := fs.String("file", "", "путь к pdf")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 || *path == "" {
		return errors.New("нужны -id и -file")
	}
	stat, err := os.Stat(*path)
	if err != nil {
		return errors.Wrap(err, "файл недоступен")
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(*path)))
	// до чтения файла, размер берется из stat
	if err = pdfattach.Validate(pdfattach.File{ContentType: contentType, Size: stat.Size()}); err != nil {
		return err
	}
	body, err := os.ReadFile(*path)
	if err != nil {
		return errors.Wrap(err, "ошибка чтения файла")
	}
	c, err := cf.connect(ctx, out)
	if err != nil {
		return err
	}
	rec, err := c.client.GetQuotation(ctx, c.sess, *id)
	if err != nil {
		return err
	}
	result, err := pdfattach.NewFlow(c.client, c.coordinator).
		Attach(ctx, c.sess, &rec, pdfattach.NewFile(filepath.Base(*path), contentType, body))
	if result.Reference != "" {
		fmt.Fprintf(out, "PDF: %v\n", result.Reference)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Статус: %v\n", rec.Estado.ToHuman())
	return nil
}

func searchCmd(ctx context.Context, args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	cf := addCommon(fs)
	size := fs.Int("size", searchPageSize, "размер страницы")
	if err := parse(fs, args); err != nil {
		return err
	}
	c, err := cf.connect(ctx, out)
	if err != nil {
		return err
	}

	results := make(chan string, 16)
	search := debounce.New(
		time.Duration(config.Conf.Workflow.SearchDebounceMs)*time.Millisecond,
		func(ctx context.Context, query string) (apimodels.Page[quotationapimodels.DashboardView], error) {
			return c.client.SearchDashboard(ctx, c.sess, query, 0, *size)
		},
		func(query string, page apimodels.Page[quotationapimodels.DashboardView], err error) {
			if err != nil {
				fmt.Fprintf(out, "[%v] ошибка: %v\n", query, err)
			} else {
				printSearch(out, query, page)
			}
			results <- query
		},
	)
	defer search.Stop()

	lastQuery, hasInput := "", false
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		lastQuery, hasInput = strings.TrimSpace(scanner.Text()), true
		search.Input(ctx, lastQuery)
	}
	if err = scanner.Err(); err != nil {
		return errors.Wrap(err, "ошибка чтения stdin")
	}
	if !hasInput {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case query := <-results:
			if query == lastQuery {
				return nil
			}
		}
	}
}

func parse(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return errors.Wrapf(err, "%v", usage)
	}
	return nil
}

func printQuotation(out io.Writer, rec quotationapimodels.FullView) {
	fmt.Fprintf(out, "%v  %v  %v\n", rec.Numero, rec.Estado.ToHuman(), rec.Creacion.Local().Format("02.01.2006 15:04"))
	fmt.Fprintf(out, "Cliente: %v (%v %v) %v %v\n", rec.Cliente, rec.TipoDocumento, rec.Documento, rec.Email, rec.Telefono)
	if rec.Comentario != "" {
		fmt.Fprintf(out, "Comentario: %v\n", rec.Comentario)
	}
	if rec.Observaciones != "" {
		fmt.Fprintf(out, "Observaciones: %v\n", rec.Observaciones)
	}
	if rec.CotizacionEnlace != "" {
		fmt.Fprintf(out, "PDF: %v\n", rec.CotizacionEnlace)
	}
}

func printMilestone(out io.Writer, history []quotationapimodels.HistoryView) {
	milestone, ok := historyprojector.Latest(history)
	if !ok {
		fmt.Fprintln(out, "Ответа по котировке пока нет")
		return
	}
	fmt.Fprintf(out, "Последнее: %v, %v, %v\n",
		milestone.Status, milestone.ActorName, milestone.Timestamp.Local().Format("02.01.2006 15:04"))
}

func printSearch(out io.Writer, query string, page apimodels.Page[quotationapimodels.DashboardView]) {
	fmt.Fprintf(out, "[%v] найдено %d\n", query, page.TotalElements)
	for _, rec := range page.Content {
		fmt.Fprintf(out, "  %v  %v  %v\n", rec.NumeroCotizacion, rec.ClienteNombre, rec.Estado.ToHuman())
	}
}
