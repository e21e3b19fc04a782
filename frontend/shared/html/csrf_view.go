package html

// CSRFFormScript stamps the CSRF cookie into a hidden _csrf field when a POST
// form is submitted. Listening at submit time covers forms inside the
// receiving dialogs as well as the page forms.
func CSRFFormScript() string {
	return `<script>
(function () {
  var cookieName = "X-CSRF-Token";

  function readToken() {
    var match = document.cookie.match(new RegExp("(?:^|;\\s*)" + cookieName + "=([^;]*)"));
    return match ? decodeURIComponent(match[1]) : "";
  }

  document.addEventListener("submit", function (ev) {
    var form = ev.target;
    if (!(form instanceof HTMLFormElement)) return;
    if ((form.getAttribute("method") || "GET").toUpperCase() !== "POST") return;

    var token = readToken();
    if (!token) return;

    var field = form.querySelector("input[name='_csrf']");
    if (!field) {
      field = document.createElement("input");
      field.type = "hidden";
      field.name = "_csrf";
      form.appendChild(field);
    }
    field.value = token;
  }, true);
})();
</script>`
}
